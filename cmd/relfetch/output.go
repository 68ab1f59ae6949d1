package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/download"
	"github.com/ZebulonRouseFrantzich/relfetch/internal/installer"
)

// chooseOutputPath decides where the asset is saved. Installs always go
// through a temporary file; otherwise output is used as is, joined with the
// asset name when it is a directory, or the asset name is saved in the
// working directory.
func chooseOutputPath(output string, install bool, assetName string, isDir func(string) bool) string {
	if install {
		return download.TempPath()
	}
	if output == "" {
		return assetName
	}
	if isDir(output) {
		return filepath.Join(output, assetName)
	}
	return output
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// installDestination returns the directory an asset is installed into:
// output when given, then the configured install directory, then the
// working directory. It must already exist.
func installDestination(output, configured string) (string, error) {
	dir := output
	if dir == "" {
		dir = configured
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("retrieve current directory: %w", err)
		}
		return cwd, nil
	}

	if err := installer.CheckDestination(dir); err != nil {
		return "", err
	}
	return dir, nil
}
