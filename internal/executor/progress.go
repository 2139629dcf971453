package executor

import (
	"log/slog"
	"sync"
)

// progress logs roughly minIters evenly spaced updates over a stage.
type progress struct {
	mu     sync.Mutex
	logger *slog.Logger
	total  int
	step   int
	done   int
	next   int
}

func newProgress(logger *slog.Logger, total, minIters int) *progress {
	step := total / max(1, minIters)
	step = max(1, step)
	return &progress{logger: logger, total: total, step: step, next: step}
}

func (p *progress) add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done += n
	if p.done < p.next && p.done < p.total {
		return
	}
	for p.next <= p.done {
		p.next += p.step
	}
	p.logger.Info("Stage progress.", "done", p.done, "total", p.total)
}
