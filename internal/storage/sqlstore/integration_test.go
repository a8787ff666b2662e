//go:build integration

package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"content_mirror/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	store     *Store
	now       time.Time
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.now = time.Now().UTC().Truncate(time.Microsecond)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	store, err := Open(DriverPostgres, connStr, func() time.Time { return s.now })
	s.Require().NoError(err)
	s.store = store
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.store != nil {
		s.store.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.store.db.ExecContext(s.ctx, "DELETE FROM content_items")
	_, _ = s.store.db.ExecContext(s.ctx, "DELETE FROM content_collections")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestSave_UpsertAndDropMissing() {
	c := domain.NewCollection(domain.KindPost, s.now)
	c.LastSyncedAt = s.now
	c.Items = []domain.Item{
		{ID: "a", Title: "A", Slug: "a"},
		{ID: "b", Title: "B", Slug: "b"},
	}
	s.Require().NoError(s.store.Save(s.ctx, c))

	c.Items = []domain.Item{
		{ID: "b", Title: "B", Slug: "b"},
		{ID: "c", Title: "C", Slug: "c"},
	}
	s.Require().NoError(s.store.Save(s.ctx, c))

	var count int
	err := s.store.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM content_items WHERE kind = $1", "post")
	s.NoError(err)
	s.Equal(2, count)

	loaded, err := s.store.Load(s.ctx, domain.KindPost)
	s.Require().NoError(err)
	s.Equal([]string{"b", "c"}, []string{loaded.Items[0].ID, loaded.Items[1].ID})
	s.WithinDuration(s.now, loaded.LastSyncedAt, time.Second)
}

func (s *PostgresIntegrationSuite) TestMarkCampaignCreated_SingleRow() {
	c := domain.NewCollection(domain.KindEpisode, s.now)
	c.Items = []domain.Item{
		{ID: "v1", Title: "One", Slug: "one"},
		{ID: "v2", Title: "Two", Slug: "two"},
	}
	s.Require().NoError(s.store.Save(s.ctx, c))

	s.Require().NoError(s.store.MarkCampaignCreated(s.ctx, domain.KindEpisode, "v2", "cmp-2", s.now))

	var marked int
	err := s.store.db.GetContext(s.ctx, &marked, "SELECT COUNT(*) FROM content_items WHERE campaign_created")
	s.NoError(err)
	s.Equal(1, marked)

	loaded, err := s.store.Load(s.ctx, domain.KindEpisode)
	s.Require().NoError(err)
	s.False(loaded.Items[0].CampaignCreated)
	s.True(loaded.Items[1].CampaignCreated)
	s.Equal("cmp-2", loaded.Items[1].CampaignID)
}

func (s *PostgresIntegrationSuite) TestClear() {
	c := domain.NewCollection(domain.KindPost, s.now)
	c.LastSyncedAt = s.now
	c.Items = []domain.Item{{ID: "a", Title: "A", Slug: "a"}}
	s.Require().NoError(s.store.Save(s.ctx, c))

	s.Require().NoError(s.store.Clear(s.ctx, domain.KindPost))

	loaded, err := s.store.Load(s.ctx, domain.KindPost)
	s.Require().NoError(err)
	s.Empty(loaded.Items)
	s.True(loaded.LastSyncedAt.IsZero())
}
