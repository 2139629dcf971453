package executor

import (
	"context"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
)

// worker is the processing loop of a single pool member. It drains chunks
// until the queue closes or the stage is cancelled.
func worker(ctx context.Context, queue <-chan chunk, workerID int, run func(chunk) error) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for c := range queue {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := run(c); err != nil {
			if ctx.Err() != nil {
				return err
			}
			logger.Error("Chunk failed.", "workerID", workerID, "from", c.lo, "to", c.hi, "error", err)
			return err
		}
	}
	logger.Debug("Worker finished.", "workerID", workerID)
	return nil
}
