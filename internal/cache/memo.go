// Package cache keeps a short-lived in-process copy of each collection so
// repeated reads do not go back to the store.
package cache

import (
	"sync"
	"time"

	"content_mirror/internal/domain"
	"content_mirror/internal/freshness"
)

type entry struct {
	collection *domain.Collection
	cachedAt   time.Time
}

type Memo struct {
	mu      sync.RWMutex
	entries map[domain.Kind]entry
	policy  *freshness.Policy
	now     func() time.Time
}

func NewMemo(policy *freshness.Policy, now func() time.Time) *Memo {
	if now == nil {
		now = time.Now
	}
	return &Memo{
		entries: make(map[domain.Kind]entry),
		policy:  policy,
		now:     now,
	}
}

// Get returns a copy of the cached collection while it is within the memo TTL.
func (m *Memo) Get(kind domain.Kind) (*domain.Collection, bool) {
	m.mu.RLock()
	e, ok := m.entries[kind]
	m.mu.RUnlock()

	if !ok || !m.policy.MemoValid(e.cachedAt) {
		return nil, false
	}
	return e.collection.Clone(), true
}

func (m *Memo) Put(c *domain.Collection) {
	if c == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[c.Kind] = entry{collection: c.Clone(), cachedAt: m.now()}
}

func (m *Memo) Invalidate(kind domain.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, kind)
}

func (m *Memo) InvalidateAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
}
