//go:build windows

package installer

// setExecutable is a no-op: Windows has no executable permission bit.
func setExecutable(path string) error {
	return nil
}
