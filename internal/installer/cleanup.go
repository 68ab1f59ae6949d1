package installer

import (
	"os"

	"go.uber.org/zap"
)

// Artifact is a downloaded file owned by one install attempt. Release
// deletes it; call it exactly once after the attempt, typically with defer.
type Artifact struct {
	path     string
	logger   *zap.Logger
	released bool
}

// Acquire takes ownership of the downloaded file at path. A nil logger
// discards cleanup warnings.
func Acquire(path string, logger *zap.Logger) *Artifact {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Artifact{path: path, logger: logger}
}

// Path returns the artifact's location.
func (a *Artifact) Path() string {
	return a.path
}

// Release deletes the artifact. A file that is already gone is not an
// error, and calls after the first do nothing. A failed deletion is logged
// as a warning and returned for callers that want it; it must never replace
// the result of the install itself.
func (a *Artifact) Release() error {
	if a.released {
		return nil
	}
	a.released = true

	if err := removeIfExists(a.path); err != nil {
		a.logger.Warn("could not remove downloaded file",
			zap.String("path", a.path),
			zap.Error(err),
		)
		return Fatal("Error removing "+a.path, err)
	}
	return nil
}

// removeIfExists deletes path, ignoring a missing file.
func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
