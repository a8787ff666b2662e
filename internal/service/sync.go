package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"content_mirror/internal/config"
	"content_mirror/internal/domain"
	"content_mirror/internal/source"
)

type SyncService struct {
	source   Source
	store    Store
	logger   *slog.Logger
	config   config.SyncConfig
	pageSize int
	now      func() time.Time
}

// SyncResult is the merged collection and the items that were not stored
// before this sync.
type SyncResult struct {
	Collection *domain.Collection
	New        []domain.Item
	Stats      domain.SyncStats
}

func NewSyncService(
	source Source,
	store Store,
	logger *slog.Logger,
	cfg config.SyncConfig,
	pageSize int,
	now func() time.Time,
) *SyncService {
	if now == nil {
		now = time.Now
	}
	if cfg.MaxPagesPerSync <= 0 {
		cfg.MaxPagesPerSync = 1
	}
	return &SyncService{
		source:   source,
		store:    store,
		logger:   logger.With("source", source.ID(), "kind", source.Kind()),
		config:   cfg,
		pageSize: pageSize,
		now:      now,
	}
}

func (s *SyncService) Kind() domain.Kind {
	return s.source.Kind()
}

func (s *SyncService) Source() Source {
	return s.source
}

// Sync fetches the provider listing, merges it into the store and persists
// it. A provider failure returns an error and leaves the store untouched. A
// persistence failure is logged and the merged result is still returned with
// Persisted=false and the previous LastSyncedAt.
func (s *SyncService) Sync(ctx context.Context) (*SyncResult, error) {
	startTime := s.now()
	s.logger.Info("starting sync",
		"source_name", s.source.Name(),
		"max_pages", s.config.MaxPagesPerSync,
		"page_size", s.pageSize,
	)

	existing, err := s.store.Load(ctx, s.source.Kind())
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	fetched, err := source.FetchAll(ctx, s.source, s.pageSize, s.config.MaxPagesPerSync)
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}

	s.logger.Info("fetched items from source", "count", len(fetched))

	merged, newItems := Merge(existing.Items, fetched)
	s.warnDuplicateSlugs(merged)

	stats := domain.SyncStats{
		Kind:    s.source.Kind(),
		Fetched: len(fetched),
		New:     len(newItems),
		Updated: len(merged) - len(newItems),
	}
	stats.Dropped = len(existing.Items) - stats.Updated

	result := &domain.Collection{
		Kind:         s.source.Kind(),
		LastSyncedAt: existing.LastSyncedAt,
		CreatedAt:    existing.CreatedAt,
		Items:        merged,
	}

	candidate := result.Clone()
	syncedAt := s.now()
	if syncedAt.After(existing.LastSyncedAt) {
		candidate.LastSyncedAt = syncedAt
	}

	if err := s.store.Save(ctx, candidate); err != nil {
		s.logger.Error("failed to persist collection",
			"error", fmt.Errorf("save collection: %w: %w", domain.ErrPersistence, err),
		)
	} else {
		result.LastSyncedAt = candidate.LastSyncedAt
		stats.Persisted = true
	}

	stats.Duration = s.now().Sub(startTime)

	s.logger.Info("sync completed",
		"fetched", stats.Fetched,
		"new", stats.New,
		"updated", stats.Updated,
		"dropped", stats.Dropped,
		"persisted", stats.Persisted,
		"duration", stats.Duration,
	)

	return &SyncResult{
		Collection: result,
		New:        newItems,
		Stats:      stats,
	}, nil
}

// Slug lookups return the first match, so duplicates are reported rather
// than rejected.
func (s *SyncService) warnDuplicateSlugs(items []domain.Item) {
	dups := lo.FindDuplicatesBy(items, func(item domain.Item) string {
		return item.Slug
	})
	for _, d := range dups {
		s.logger.Warn("duplicate slug, first item wins", "slug", d.Slug, "id", d.ID)
	}
}
