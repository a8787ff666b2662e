package freshness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"content_mirror/internal/domain"
)

func collectionSyncedAt(t time.Time, items int) *domain.Collection {
	c := domain.NewCollection(domain.KindPost, t)
	c.LastSyncedAt = t
	for i := 0; i < items; i++ {
		c.Items = append(c.Items, domain.Item{ID: string(rune('a' + i))})
	}
	return c
}

func TestIsFresh_Boundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p := New(24*time.Hour, time.Minute, func() time.Time { return now })

	stale := collectionSyncedAt(now.Add(-24*time.Hour-time.Second), 1)
	assert.False(t, p.IsFresh(stale, false))

	fresh := collectionSyncedAt(now.Add(-(23*time.Hour + 59*time.Minute + 59*time.Second)), 1)
	assert.True(t, p.IsFresh(fresh, false))

	exact := collectionSyncedAt(now.Add(-24*time.Hour), 1)
	assert.False(t, p.IsFresh(exact, false))
}

func TestIsFresh_ForceAlwaysStale(t *testing.T) {
	now := time.Now()
	p := New(24*time.Hour, 0, func() time.Time { return now })

	assert.False(t, p.IsFresh(collectionSyncedAt(now, 3), true))
	assert.False(t, p.IsFresh(collectionSyncedAt(now.Add(-time.Minute), 3), true))
}

func TestIsFresh_EmptyCollection(t *testing.T) {
	now := time.Now()
	p := New(24*time.Hour, 0, func() time.Time { return now })

	assert.False(t, p.IsFresh(collectionSyncedAt(now, 0), false))
	assert.False(t, p.IsFresh(nil, false))
}

func TestIsFresh_NeverSynced(t *testing.T) {
	now := time.Now()
	p := New(0, 0, func() time.Time { return now })

	c := collectionSyncedAt(now, 2)
	c.LastSyncedAt = time.Time{}
	assert.False(t, p.IsFresh(c, false))
	assert.Equal(t, DefaultWindow, p.Window())
}

func TestMemoValid(t *testing.T) {
	now := time.Now()
	p := New(time.Hour, time.Minute, func() time.Time { return now })

	assert.True(t, p.MemoValid(now.Add(-30*time.Second)))
	assert.False(t, p.MemoValid(now.Add(-2*time.Minute)))
	assert.False(t, p.MemoValid(time.Time{}))

	disabled := New(time.Hour, 0, func() time.Time { return now })
	assert.False(t, disabled.MemoValid(now))
}
