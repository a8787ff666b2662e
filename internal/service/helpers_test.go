package service

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"content_mirror/internal/domain"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func post(id string) domain.Item {
	return domain.Item{
		ID:          id,
		Kind:        domain.KindPost,
		Slug:        "post-" + id,
		Title:       "Post " + id,
		Body:        "<p>body of " + id + "</p>",
		Excerpt:     "body of " + id,
		Category:    domain.DefaultCategory,
		PublishedAt: testNow.Add(-time.Hour),
	}
}

func posts(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = post(fmt.Sprintf("%02d", i+1))
	}
	return items
}

func ids(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

// clock is a settable time source.
type clock struct {
	t time.Time
}

func (c *clock) Now() time.Time {
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}
