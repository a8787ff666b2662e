// Package storage opens the local store that backs the mirror. Every backend
// keeps one collection per content kind.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"content_mirror/internal/domain"
	"content_mirror/internal/storage/jsonfile"
	"content_mirror/internal/storage/memory"
	"content_mirror/internal/storage/sqlstore"
)

const DefaultDSN = "file://data"

// Backend is the contract shared by all store implementations.
type Backend interface {
	// Load returns the collection for kind, creating an empty one on first
	// access.
	Load(ctx context.Context, kind domain.Kind) (*domain.Collection, error)
	// Save replaces the persisted collection in one operation.
	Save(ctx context.Context, c *domain.Collection) error
	// MarkCampaignCreated updates the store-only campaign fields of one item.
	MarkCampaignCreated(ctx context.Context, kind domain.Kind, id, campaignID string, at time.Time) error
	// Clear resets the collection for kind to empty.
	Clear(ctx context.Context, kind domain.Kind) error
	Close() error
}

// Open selects a backend from the DSN scheme: file://dir, memory://,
// postgres://... or sqlite3://path.
func Open(dsn string, now func() time.Time) (Backend, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = DefaultDSN
	}
	if now == nil {
		now = time.Now
	}

	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return jsonfile.New(dsn, now)
	}

	switch strings.ToLower(scheme) {
	case "file":
		return jsonfile.New(rest, now)
	case "memory", "mem", "inmem":
		return memory.New(now), nil
	case "postgres", "postgresql":
		return sqlstore.Open(sqlstore.DriverPostgres, dsn, now)
	case "sqlite", "sqlite3":
		return sqlstore.Open(sqlstore.DriverSQLite, rest, now)
	default:
		return nil, fmt.Errorf("unsupported store scheme: %s", scheme)
	}
}
