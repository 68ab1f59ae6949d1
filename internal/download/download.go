// Package download streams release assets to disk with progress reporting.
package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// chunkSize is the amount read from the network per progress update.
const chunkSize = 32 * 1024

// Stream is an open asset download.
type Stream struct {
	Body io.Reader
	// Name is the asset name shown while downloading.
	Name string
	// Length is the announced size in bytes, or 0 when unknown. It only
	// drives progress reporting; the body is saved whatever its size.
	Length int64
}

// TempPath returns a fresh path in the system temp directory for a
// download that is only kept until it has been installed.
func TempPath() string {
	return filepath.Join(os.TempDir(), "relfetch-"+uuid.NewString())
}

// Save writes stream to destPath. Data goes to a sibling temporary file
// first and is renamed into place once complete, so destPath never holds a
// partial download. A nil progress reports nothing.
func Save(ctx context.Context, stream Stream, destPath string, progress Progress) error {
	if progress == nil {
		progress = NoProgress{}
	}

	tmpPath := destPath + ".part"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	progress.Start(stream.Name, stream.Length)
	err = copyChunks(ctx, tmpFile, stream.Body, progress)
	progress.Finish()
	if err != nil {
		return fmt.Errorf("download %s: %w", stream.Name, err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}

	cleanupNeeded = false
	return nil
}

func copyChunks(ctx context.Context, dst io.Writer, src io.Reader, progress Progress) error {
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return err
			}
			progress.Advance(n)
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
