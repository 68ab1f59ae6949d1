package installer

import (
	"errors"
	"fmt"
)

// InstallError is a fatal failure of an install attempt. Its message is
// meant to be shown to the user as is.
type InstallError struct {
	Message string
	Err     error
}

// Fatal returns an InstallError with message and an optional cause.
func Fatal(message string, err error) *InstallError {
	return &InstallError{Message: message, Err: err}
}

// Fatalf returns an InstallError without cause and a formatted message.
func Fatalf(format string, args ...any) *InstallError {
	return &InstallError{Message: fmt.Sprintf(format, args...)}
}

func (e *InstallError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *InstallError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err is, or wraps, an InstallError.
func IsFatal(err error) bool {
	var ie *InstallError
	return errors.As(err, &ie)
}
