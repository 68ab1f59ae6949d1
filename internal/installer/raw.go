package installer

import (
	"fmt"
	"os"
)

// copyExecutable copies an already executable file to target unchanged.
func copyExecutable(src, target string) error {
	in, err := os.Open(src)
	if err != nil {
		return Fatal(fmt.Sprintf("Error opening %s", src), err)
	}
	defer in.Close()

	return writeExecutable(in, target)
}
