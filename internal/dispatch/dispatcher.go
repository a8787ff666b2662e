// Package dispatch moves notifier runs off the request path. Kinds are queued
// without blocking and drained by a fixed set of workers.
package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"content_mirror/internal/domain"
)

type Runner interface {
	NotifyPending(ctx context.Context, kind domain.Kind) (*domain.NotifyStats, error)
}

type Dispatcher struct {
	runner  Runner
	queue   chan domain.Kind
	workers int
	logger  *slog.Logger

	mu      sync.Mutex
	pending map[domain.Kind]bool
}

func New(runner Runner, queueSize, workers int, logger *slog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{
		runner:  runner,
		queue:   make(chan domain.Kind, queueSize),
		workers: workers,
		logger:  logger.With("component", "dispatcher"),
		pending: make(map[domain.Kind]bool),
	}
}

// Enqueue schedules a notifier run for kind. A kind already waiting in the
// queue is not queued twice. It returns false when the queue is full.
func (d *Dispatcher) Enqueue(kind domain.Kind) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending[kind] {
		return true
	}

	select {
	case d.queue <- kind:
		d.pending[kind] = true
		return true
	default:
		d.logger.Warn("queue full, dropping notify request", "kind", kind)
		return false
	}
}

// Run starts the workers and blocks until ctx is done and every worker has
// finished its current run.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("dispatcher started", "workers", d.workers)

	var wg sync.WaitGroup
	for range d.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.work(ctx)
		}()
	}
	wg.Wait()

	d.logger.Info("dispatcher stopped")
	return ctx.Err()
}

func (d *Dispatcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case kind := <-d.queue:
			d.mu.Lock()
			delete(d.pending, kind)
			d.mu.Unlock()

			stats, err := d.runner.NotifyPending(ctx, kind)
			if err != nil {
				d.logger.Error("notify run failed", "kind", kind, "error", err)
				continue
			}
			if stats.Pending > 0 {
				d.logger.Debug("notify run finished",
					"kind", kind,
					"created", stats.Created,
					"errors", stats.Errors,
				)
			}
		}
	}
}
