package fsutil

import (
	"context"
	"fmt"
	"io"

	"github.com/google/renameio/v2"
	"github.com/specialistvlad/noise2read/internal/ctxlog"
)

// WriteAtomic writes path through fn. The content lands in a temporary file
// next to path and replaces it only after fn succeeded and the data was
// synced, so a failed stage never leaves a truncated report behind.
func WriteAtomic(ctx context.Context, path string, fn func(w io.Writer) error) error {
	logger := ctxlog.FromContext(ctx)

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file %s: %w", path, err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger.Debug("Failed to clean up pending file.", "path", path, "error", err)
		}
	}()

	if err := fn(pending); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	logger.Debug("File written.", "path", path)
	return nil
}
