// Package testutil provides utilities for testing relfetch in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// clearedEnv lists every variable relfetch reads settings from.
var clearedEnv = []string{
	"GITHUB_TOKEN",
	"RELFETCH_GITHUB_TOKEN",
	"RELFETCH_DEBUG",
	"RELFETCH_INSTALL_DIR",
	"RELFETCH_SELECT_SCRIPT",
}

// SetupTestEnv isolates a test from the user's relfetch configuration:
// XDG_CONFIG_HOME and TMPDIR point at fresh directories and every setting
// variable is unset. It returns the config home. All changes are undone when
// the test ends.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	configHome := filepath.Join(tmpDir, "config")
	tempFiles := filepath.Join(tmpDir, "tmp")

	for _, dir := range []string{configHome, tempFiles} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("TMPDIR", tempFiles)

	for _, name := range clearedEnv {
		// t.Setenv records the value to restore; the variable itself must
		// be absent, not empty
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	return configHome
}
