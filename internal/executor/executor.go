// Package executor runs the data-parallel stages of the pipeline on a bounded
// worker pool. Work is split into chunks that workers pull from a shared
// channel; results come back in input order regardless of which worker
// produced them, and the first failure cancels the rest.
package executor

import (
	"context"
	"fmt"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"golang.org/x/sync/errgroup"
)

// Options configures one parallel stage.
type Options struct {
	// Workers is the pool size; values below 1 run a single worker.
	Workers int
	// Chunks is the number of batches the input is split into.
	Chunks int
	// MinIters is the number of progress lines logged for the stage.
	MinIters int
	// Stage names the stage in log output.
	Stage string
}

type chunk struct {
	lo, hi int
}

// Map applies fn to every item and returns the results in input order.
func Map[T, R any](ctx context.Context, opts Options, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	logger := ctxlog.FromContext(ctx).With("stage", opts.Stage)
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	chunks := split(len(items), opts.Chunks)
	workers := max(1, min(opts.Workers, len(chunks)))
	logger.Debug("Stage started.", "items", len(items), "chunks", len(chunks), "workers", workers)

	g, gctx := errgroup.WithContext(ctx)
	queue := make(chan chunk)
	prog := newProgress(logger, len(items), opts.MinIters)

	g.Go(func() error {
		defer close(queue)
		for _, c := range chunks {
			select {
			case queue <- c:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for workerID := range workers {
		g.Go(func() error {
			return worker(gctx, queue, workerID, func(c chunk) error {
				for i := c.lo; i < c.hi; i++ {
					if err := gctx.Err(); err != nil {
						return err
					}
					r, err := fn(gctx, items[i])
					if err != nil {
						return fmt.Errorf("%s: item %d: %w", opts.Stage, i, err)
					}
					results[i] = r
				}
				prog.add(c.hi - c.lo)
				return nil
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("Stage finished.", "items", len(items))
	return results, nil
}

// Each is Map for functions without a result.
func Each[T any](ctx context.Context, opts Options, items []T, fn func(context.Context, T) error) error {
	_, err := Map(ctx, opts, items, func(ctx context.Context, item T) (struct{}, error) {
		return struct{}{}, fn(ctx, item)
	})
	return err
}

// split divides n items into at most parts contiguous chunks whose sizes
// differ by at most one.
func split(n, parts int) []chunk {
	parts = max(1, min(parts, n))
	out := make([]chunk, 0, parts)
	size, rest := n/parts, n%parts
	lo := 0
	for i := range parts {
		hi := lo + size
		if i < rest {
			hi++
		}
		out = append(out, chunk{lo: lo, hi: hi})
		lo = hi
	}
	return out
}
