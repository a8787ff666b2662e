package source

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content_mirror/internal/domain"
)

type pagesFake struct {
	pages   map[string]*domain.Batch
	failOn  string
	cursors []string
}

func (p *pagesFake) FetchBatch(_ context.Context, cursor string, _ int) (*domain.Batch, error) {
	p.cursors = append(p.cursors, cursor)
	if cursor == p.failOn {
		return nil, fmt.Errorf("status 500: %w", domain.ErrProviderUnavailable)
	}
	return p.pages[cursor], nil
}

func threePages() map[string]*domain.Batch {
	return map[string]*domain.Batch{
		"":  {Items: []domain.Item{{ID: "1"}, {ID: "2"}}, NextCursor: "b"},
		"b": {Items: []domain.Item{{ID: "3"}}, NextCursor: "c"},
		"c": {Items: []domain.Item{{ID: "4"}}},
	}
}

func TestFetchAll_FollowsCursors(t *testing.T) {
	p := &pagesFake{pages: threePages(), failOn: "none"}

	items, err := FetchAll(context.Background(), p, 2, 10)

	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, []string{"", "b", "c"}, p.cursors)
}

func TestFetchAll_StopsAtMaxPages(t *testing.T) {
	p := &pagesFake{pages: threePages(), failOn: "none"}

	items, err := FetchAll(context.Background(), p, 2, 2)

	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestFetchAll_PageFailureFailsWalk(t *testing.T) {
	p := &pagesFake{pages: threePages(), failOn: "b"}

	items, err := FetchAll(context.Background(), p, 2, 10)

	assert.Nil(t, items)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}
