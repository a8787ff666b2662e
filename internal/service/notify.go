package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"content_mirror/internal/domain"
)

// Notifier creates one downstream campaign per stored item and records it
// on the item so later runs skip it.
type Notifier struct {
	store      Store
	campaigner Campaigner
	memo       Invalidator
	logger     *slog.Logger
	now        func() time.Time

	mu sync.Mutex
}

// NewNotifier returns a notifier. A nil campaigner disables notifications;
// memo may be nil.
func NewNotifier(store Store, campaigner Campaigner, memo Invalidator, logger *slog.Logger, now func() time.Time) *Notifier {
	if now == nil {
		now = time.Now
	}
	return &Notifier{
		store:      store,
		campaigner: campaigner,
		memo:       memo,
		logger:     logger.With("component", "notifier"),
		now:        now,
	}
}

func (n *Notifier) Enabled() bool {
	return n.campaigner != nil
}

// NotifyPending runs the campaign effect for every item of kind whose marker
// is unset. Failures are counted and logged per item; the loop continues.
func (n *Notifier) NotifyPending(ctx context.Context, kind domain.Kind) (*domain.NotifyStats, error) {
	stats := &domain.NotifyStats{Kind: kind}
	if n.campaigner == nil {
		return stats, nil
	}

	// Runs for the same store must not interleave or an item could be
	// picked up twice before its marker is written.
	n.mu.Lock()
	defer n.mu.Unlock()

	c, err := n.store.Load(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	pending := lo.Filter(c.Items, func(item domain.Item, _ int) bool {
		return !item.CampaignCreated
	})
	stats.Pending = len(pending)
	if len(pending) == 0 {
		return stats, nil
	}

	logger := n.logger.With("kind", kind)
	logger.Info("notifying pending items", "count", len(pending))

	for i := range pending {
		item := &pending[i]
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		campaignID, err := n.campaigner.CreateCampaign(ctx, item)
		if err != nil {
			stats.Errors++
			logger.Error("failed to create campaign",
				"id", item.ID,
				"error", fmt.Errorf("create campaign: %w: %w", domain.ErrNotification, err),
			)
			continue
		}

		if err := n.store.MarkCampaignCreated(ctx, kind, item.ID, campaignID, n.now()); err != nil {
			// The effect already happened; the next run will repeat it.
			stats.MarkFails++
			logger.Error("failed to mark campaign created",
				"id", item.ID,
				"campaign_id", campaignID,
				"error", err,
			)
			continue
		}
		stats.Created++
	}

	if n.memo != nil && stats.Created > 0 {
		n.memo.Invalidate(kind)
	}

	logger.Info("notification run completed",
		"pending", stats.Pending,
		"created", stats.Created,
		"errors", stats.Errors,
		"mark_fails", stats.MarkFails,
	)

	return stats, nil
}
