package installer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"unicode/utf8"
)

// RunCommand runs cmd to completion and classifies its result. name is the
// program name used in messages. Success is decided by the exit status
// alone; the program's own diagnostics are passed through verbatim.
func RunCommand(name string, cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	if cmd.Stderr != nil {
		cmd.Stderr = io.MultiWriter(cmd.Stderr, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return Fatal(fmt.Sprintf("An error occurred executing '%s'", name), err)
	}

	status := "NA"
	if code := exitErr.ExitCode(); code >= 0 {
		status = strconv.Itoa(code)
	}

	message := fmt.Sprintf("Unknown %s error", name)
	if utf8.Valid(stderr.Bytes()) {
		message = stderr.String()
	}

	return Fatalf("An error occurred while executing (status: %s):\n  %s", status, message)
}
