package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"

	"content_mirror/internal/domain"
	"content_mirror/internal/freshness"
	"content_mirror/internal/source"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const (
	SourceCache    = "cache"
	SourceProvider = "provider"
)

type Query struct {
	Category     string
	Search       string
	Page         int
	PageSize     int
	ForceRefresh bool
}

type Page struct {
	Items    []domain.Item `json:"items"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Total    int           `json:"total"`
	HasMore  bool          `json:"hasMore"`
	Source   string        `json:"source"`
	Stale    bool          `json:"stale"`
}

// Memo is the in-process copy of collections kept in front of the store.
type Memo interface {
	Invalidator
	Get(kind domain.Kind) (*domain.Collection, bool)
	Put(c *domain.Collection)
}

// QueryService is the read path. It serves from the store while the
// collection is fresh and refreshes from the provider otherwise.
type QueryService struct {
	syncers     map[domain.Kind]*SyncService
	store       Store
	policy      *freshness.Policy
	memo        Memo
	queue       NotifyQueue
	logger      *slog.Logger
	syncTimeout time.Duration
	now         func() time.Time

	refreshes singleflight.Group
}

type QueryConfig struct {
	SyncTimeout time.Duration
	Now         func() time.Time
}

// NewQueryService wires the read path. memo and queue may be nil.
func NewQueryService(
	store Store,
	policy *freshness.Policy,
	memo Memo,
	queue NotifyQueue,
	logger *slog.Logger,
	cfg QueryConfig,
	syncers ...*SyncService,
) *QueryService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.SyncTimeout <= 0 {
		cfg.SyncTimeout = 2 * time.Minute
	}
	byKind := make(map[domain.Kind]*SyncService, len(syncers))
	for _, s := range syncers {
		byKind[s.Kind()] = s
	}
	return &QueryService{
		syncers:     byKind,
		store:       store,
		policy:      policy,
		memo:        memo,
		queue:       queue,
		logger:      logger.With("component", "query"),
		syncTimeout: cfg.SyncTimeout,
		now:         cfg.Now,
	}
}

// Kinds returns the kinds that have a provider configured.
func (q *QueryService) Kinds() []domain.Kind {
	return lo.Filter(domain.Kinds, func(k domain.Kind, _ int) bool {
		_, ok := q.syncers[k]
		return ok
	})
}

func (q *QueryService) List(ctx context.Context, kind domain.Kind, query Query) (*Page, error) {
	if _, ok := q.syncers[kind]; !ok {
		return nil, fmt.Errorf("list %s: %w", kind, domain.ErrUnknownKind)
	}
	query = normalizeQuery(query)
	logger := q.logger.With("kind", kind)

	stored, err := q.collection(ctx, kind)
	if err != nil {
		logger.Error("failed to load collection", "error", err)
		stored = nil
	}

	if q.policy.IsFresh(stored, query.ForceRefresh) {
		return paginate(stored.Items, query, SourceCache, false), nil
	}

	result, err := q.refresh(ctx, kind)
	if err != nil {
		if stored != nil && len(stored.Items) > 0 {
			logger.Warn("refresh failed, serving stored items", "error", err)
			return paginate(stored.Items, query, SourceCache, true), nil
		}
		return nil, fmt.Errorf("refresh %s: %w", kind, err)
	}

	return paginate(result.Collection.Items, query, SourceProvider, false), nil
}

func (q *QueryService) GetBySlug(ctx context.Context, kind domain.Kind, slug string) (*domain.Item, error) {
	c, err := q.knownCollection(ctx, kind)
	if err != nil {
		return nil, err
	}
	item, ok := c.FindBySlug(slug)
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, slug, domain.ErrNotFound)
	}
	return &item, nil
}

// GetByID looks in the store first. If the store has never been populated
// and the provider can fetch single items, the item is fetched directly.
func (q *QueryService) GetByID(ctx context.Context, kind domain.Kind, id string) (*domain.Item, error) {
	c, err := q.knownCollection(ctx, kind)
	if err != nil {
		return nil, err
	}
	if item, ok := c.FindByID(id); ok {
		return &item, nil
	}

	fetcher, ok := q.syncers[kind].Source().(ItemFetcher)
	if c.Synced() || !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, id, domain.ErrNotFound)
	}

	fetchCtx, cancel := q.detached(ctx)
	defer cancel()

	item, err := fetcher.FetchByID(fetchCtx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %q: %w", kind, id, err)
	}
	return item, nil
}

func (q *QueryService) Clear(ctx context.Context, kind domain.Kind) error {
	if _, ok := q.syncers[kind]; !ok {
		return fmt.Errorf("clear %s: %w", kind, domain.ErrUnknownKind)
	}
	if q.memo != nil {
		defer q.memo.Invalidate(kind)
	}
	if err := q.store.Clear(ctx, kind); err != nil {
		return fmt.Errorf("clear %s: %w", kind, err)
	}
	q.logger.Info("collection cleared", "kind", kind)
	return nil
}

func (q *QueryService) Count(ctx context.Context, kind domain.Kind) (int, error) {
	c, err := q.knownCollection(ctx, kind)
	if err != nil {
		return 0, err
	}
	return len(c.Items), nil
}

// RecentSince returns stored items published within the last hours.
func (q *QueryService) RecentSince(ctx context.Context, kind domain.Kind, hours int) ([]domain.Item, error) {
	c, err := q.knownCollection(ctx, kind)
	if err != nil {
		return nil, err
	}
	cutoff := q.now().Add(-time.Duration(hours) * time.Hour)
	return lo.Filter(c.Items, func(item domain.Item, _ int) bool {
		return !item.PublishedAt.Before(cutoff)
	}), nil
}

// refresh syncs kind on a context detached from the caller. Concurrent
// refreshes of one kind in this process share a single provider walk.
func (q *QueryService) refresh(ctx context.Context, kind domain.Kind) (*SyncResult, error) {
	v, err, _ := q.refreshes.Do(string(kind), func() (any, error) {
		syncCtx, cancel := q.detached(ctx)
		defer cancel()

		result, err := q.syncers[kind].Sync(syncCtx)
		if err != nil {
			return nil, err
		}

		// The store may hold markers written while the provider was walked,
		// so the next read reloads it rather than caching the sync result.
		if q.memo != nil {
			q.memo.Invalidate(kind)
		}

		// Markers can only be written for persisted items.
		if q.queue != nil && result.Stats.Persisted {
			if !q.queue.Enqueue(kind) {
				q.logger.Warn("notify queue full, leaving items for the sweep", "kind", kind)
			}
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*SyncResult), nil
}

func (q *QueryService) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), q.syncTimeout)
}

func (q *QueryService) knownCollection(ctx context.Context, kind domain.Kind) (*domain.Collection, error) {
	if _, ok := q.syncers[kind]; !ok {
		return nil, fmt.Errorf("%s: %w", kind, domain.ErrUnknownKind)
	}
	return q.collection(ctx, kind)
}

func (q *QueryService) collection(ctx context.Context, kind domain.Kind) (*domain.Collection, error) {
	if q.memo != nil {
		if c, ok := q.memo.Get(kind); ok {
			return c, nil
		}
	}
	c, err := q.store.Load(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if q.memo != nil {
		q.memo.Put(c)
	}
	return c, nil
}

func normalizeQuery(query Query) Query {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = DefaultPageSize
	}
	if query.PageSize > MaxPageSize {
		query.PageSize = MaxPageSize
	}
	query.Search = strings.TrimSpace(query.Search)
	return query
}

func paginate(items []domain.Item, query Query, origin string, stale bool) *Page {
	filtered := filterItems(items, query)
	total := len(filtered)

	offset := min((query.Page-1)*query.PageSize, total)
	end := min(offset+query.PageSize, total)

	return &Page{
		Items:    filtered[offset:end],
		Page:     query.Page,
		PageSize: query.PageSize,
		Total:    total,
		HasMore:  end < total,
		Source:   origin,
		Stale:    stale,
	}
}

func filterItems(items []domain.Item, query Query) []domain.Item {
	needle := strings.ToLower(query.Search)
	return lo.Filter(items, func(item domain.Item, _ int) bool {
		if query.Category != "" && item.Category != query.Category {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(item.Title), needle) ||
			strings.Contains(strings.ToLower(item.Excerpt), needle) ||
			strings.Contains(strings.ToLower(source.StripMarkup(item.Body)), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle)
	})
}
