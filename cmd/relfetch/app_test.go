package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var quiet bytes.Buffer
	logger := newLogger(false, &quiet)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, logger.Sync())

	assert.NotContains(t, quiet.String(), "hidden")
	assert.Contains(t, quiet.String(), "WARN\tshown")

	var verbose bytes.Buffer
	logger = newLogger(true, &verbose)
	logger.Debug("details")
	require.NoError(t, logger.Sync())
	assert.Contains(t, verbose.String(), "details")
}

func TestSetup_LogsConfigWarnings(t *testing.T) {
	a, _ := newTestApp(t, toolRelease(), linuxAmd64(), "")
	a.logger = nil
	var stderr bytes.Buffer
	a.stderr = &stderr

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("github_token: secret\n"), 0o644))
	require.NoError(t, os.Chmod(cfg, 0o644))

	require.NoError(t, runCLI(a, "--config", cfg, "untag", "acme/tool"))
	assert.Equal(t, "secret", a.settings.GitHubToken)
	if os.PathSeparator == '/' {
		assert.Contains(t, stderr.String(), "readable by other users")
	}
}
