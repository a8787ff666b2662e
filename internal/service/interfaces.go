package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"content_mirror/internal/domain"
)

type Source interface {
	ID() string
	Name() string
	Kind() domain.Kind
	FetchBatch(ctx context.Context, cursor string, maxResults int) (*domain.Batch, error)
}

// ItemFetcher is implemented by sources that can fetch one item by id.
type ItemFetcher interface {
	FetchByID(ctx context.Context, id string) (*domain.Item, error)
}

type Store interface {
	Load(ctx context.Context, kind domain.Kind) (*domain.Collection, error)
	Save(ctx context.Context, c *domain.Collection) error
	MarkCampaignCreated(ctx context.Context, kind domain.Kind, id, campaignID string, at time.Time) error
	Clear(ctx context.Context, kind domain.Kind) error
}

// Campaigner performs the downstream effect for a new item and returns the
// external campaign id.
type Campaigner interface {
	CreateCampaign(ctx context.Context, item *domain.Item) (string, error)
}

// NotifyQueue hands notifier work off the read path. Enqueue must not block.
type NotifyQueue interface {
	Enqueue(kind domain.Kind) bool
}

// Invalidator drops cached copies of a collection.
type Invalidator interface {
	Invalidate(kind domain.Kind)
}
