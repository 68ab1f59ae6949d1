//go:build !windows

package installer

import (
	"fmt"
	"os"
)

// setExecutable sets permissions to 0755 (rwxr-xr-x).
func setExecutable(path string) error {
	if err := os.Chmod(path, 0o755); err != nil {
		return Fatal(fmt.Sprintf("Cannot set executable permissions on %s", path), err)
	}
	return nil
}
