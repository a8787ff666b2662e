package source

import (
	"context"
	"fmt"

	"content_mirror/internal/domain"
)

// Pager is a provider listing that can be walked page by page.
type Pager interface {
	FetchBatch(ctx context.Context, cursor string, maxResults int) (*domain.Batch, error)
}

// FetchAll walks up to maxPages pages. A failing page fails the whole walk so
// a partial listing is never mistaken for the provider's current state.
func FetchAll(ctx context.Context, p Pager, pageSize, maxPages int) ([]domain.Item, error) {
	var all []domain.Item
	cursor := ""
	for page := 0; page < maxPages; page++ {
		batch, err := p.FetchBatch(ctx, cursor, pageSize)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}
		all = append(all, batch.Items...)
		if batch.NextCursor == "" {
			break
		}
		cursor = batch.NextCursor
	}
	return all, nil
}
