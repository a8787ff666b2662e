// Package freshness decides whether a mirrored collection may be served
// without asking the provider again.
package freshness

import (
	"time"

	"content_mirror/internal/domain"
)

const (
	DefaultWindow  = 24 * time.Hour
	DefaultMemoTTL = time.Minute
)

type Policy struct {
	window  time.Duration
	memoTTL time.Duration
	now     func() time.Time
}

func New(window, memoTTL time.Duration, now func() time.Time) *Policy {
	if window <= 0 {
		window = DefaultWindow
	}
	if memoTTL < 0 {
		memoTTL = 0
	}
	if now == nil {
		now = time.Now
	}
	return &Policy{window: window, memoTTL: memoTTL, now: now}
}

func (p *Policy) Window() time.Duration {
	return p.window
}

// IsFresh reports whether c can be served as-is. An empty or never-synced
// collection is never fresh.
func (p *Policy) IsFresh(c *domain.Collection, force bool) bool {
	if force {
		return false
	}
	if c == nil || len(c.Items) == 0 {
		return false
	}
	if c.LastSyncedAt.IsZero() {
		return false
	}
	return p.now().Sub(c.LastSyncedAt) < p.window
}

// MemoValid reports whether an in-process copy taken at cachedAt is still
// usable.
func (p *Policy) MemoValid(cachedAt time.Time) bool {
	if p.memoTTL == 0 || cachedAt.IsZero() {
		return false
	}
	return p.now().Sub(cachedAt) < p.memoTTL
}
