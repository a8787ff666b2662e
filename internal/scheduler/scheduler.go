package scheduler

import (
	"context"
	"log/slog"
	"time"

	"content_mirror/internal/domain"
)

// Enqueuer accepts a notifier run for a kind.
type Enqueuer interface {
	Enqueue(kind domain.Kind) bool
}

// Scheduler periodically queues a notifier run for every kind so items whose
// campaign was never recorded are retried.
type Scheduler struct {
	queue    Enqueuer
	kinds    []domain.Kind
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(queue Enqueuer, kinds []domain.Kind, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		queue:    queue,
		kinds:    kinds,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "kinds", s.kinds)

	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Scheduler) sweep() {
	for _, kind := range s.kinds {
		if !s.queue.Enqueue(kind) {
			s.logger.Warn("sweep skipped, queue full", "kind", kind)
		}
	}
}
