// Package memory is an in-process store, used for tests and for running the
// mirror without a disk.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"content_mirror/internal/domain"
)

type Store struct {
	mu          sync.Mutex
	now         func() time.Time
	collections map[domain.Kind]*domain.Collection

	// SaveErr, when set, is returned by Save without touching state.
	SaveErr error
	// MarkErr, when set, is returned by MarkCampaignCreated.
	MarkErr error
}

func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:         now,
		collections: make(map[domain.Kind]*domain.Collection),
	}
}

func (s *Store) Load(_ context.Context, kind domain.Kind) (*domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(kind).Clone(), nil
}

func (s *Store) Save(_ context.Context, c *domain.Collection) error {
	if c == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	next := c.Clone()
	if prev, ok := s.collections[c.Kind]; ok {
		next.KeepCampaignMarkers(prev.Items)
	}
	s.collections[c.Kind] = next
	return nil
}

func (s *Store) MarkCampaignCreated(_ context.Context, kind domain.Kind, id, campaignID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MarkErr != nil {
		return s.MarkErr
	}
	c := s.loadLocked(kind)
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].CampaignCreated = true
			c.Items[i].CampaignID = campaignID
			c.Items[i].CampaignCreatedAt = &at
			return nil
		}
	}
	return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
}

func (s *Store) Clear(_ context.Context, kind domain.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[kind] = domain.NewCollection(kind, s.now())
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) loadLocked(kind domain.Kind) *domain.Collection {
	c, ok := s.collections[kind]
	if !ok {
		c = domain.NewCollection(kind, s.now())
		s.collections[kind] = c
	}
	return c
}
