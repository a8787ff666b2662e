package video

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content_mirror/internal/domain"
	"content_mirror/internal/source"
)

const listingPage1 = `{
  "data": [
    {"id": "v1", "title": "Episode One", "description": "<p>Pilot</p>", "published_at": "2026-03-01T12:00:00Z", "thumbnail_url": "https://img.example.com/v1.jpg", "url": "https://video.example.com/v1"},
    {"id": "v2", "title": "Teaser", "description": "short", "published_at": "2026-03-02T12:00:00Z"},
    {"id": "v3", "title": "Episode Three", "description": "no details", "published_at": "2026-03-03T12:00:00Z"}
  ],
  "paging": {"page": 1, "per_page": 3, "total_pages": 2}
}`

const listingPage2 = `{
  "data": [
    {"id": "v4", "title": "Episode Four", "description": "", "published_at": "2026-03-04T12:00:00Z"}
  ],
  "paging": {"page": 2, "per_page": 3, "total_pages": 2}
}`

const details = `{
  "data": [
    {"id": "v1", "duration_seconds": 1800, "view_count": 1200, "like_count": 80},
    {"id": "v2", "duration_seconds": 30, "view_count": 9000},
    {"id": "v4", "duration_seconds": 600}
  ]
}`

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(Config{
		BaseURL:   srv.URL,
		ChannelID: "chan-1",
		Client: source.ClientConfig{
			Timeout:     time.Second,
			MaxAttempts: 1,
			BearerToken: "tok",
		},
	}, logger)
}

func channelHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/channels/chan-1/videos":
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprint(w, listingPage2)
				return
			}
			fmt.Fprint(w, listingPage1)
		case "/videos":
			assert.NotEmpty(t, r.URL.Query().Get("ids"))
			fmt.Fprint(w, details)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestFetchBatch_JoinsDetailsAndFiltersShortVideos(t *testing.T) {
	src := newTestSource(t, channelHandler(t))

	batch, err := src.FetchBatch(context.Background(), "", 3)
	require.NoError(t, err)

	assert.Equal(t, "2", batch.NextCursor)
	require.Len(t, batch.Items, 2)

	first := batch.Items[0]
	assert.Equal(t, "v1", first.ID)
	assert.Equal(t, domain.KindEpisode, first.Kind)
	assert.Equal(t, "episode-one", first.Slug)
	assert.Equal(t, "Pilot", first.Excerpt)
	assert.Equal(t, 1800, first.DurationSeconds)
	assert.Equal(t, int64(1200), first.ViewCount)
	assert.Equal(t, int64(80), first.LikeCount)
	assert.Zero(t, first.CommentCount)
	assert.Equal(t, "https://img.example.com/v1.jpg", first.ImageURL)

	// Without details the episode is kept with empty engagement.
	third := batch.Items[1]
	assert.Equal(t, "v3", third.ID)
	assert.Zero(t, third.DurationSeconds)
	assert.Zero(t, third.ViewCount)
}

func TestFetchAll_WalksPageNumbers(t *testing.T) {
	src := newTestSource(t, channelHandler(t))

	items, err := source.FetchAll(context.Background(), src, 3, 10)
	require.NoError(t, err)

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	assert.Equal(t, []string{"v1", "v3", "v4"}, ids)
}

func TestFetchBatch_DetailFailureFailsPage(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/videos") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, listingPage1)
	})

	_, err := src.FetchBatch(context.Background(), "", 3)

	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestFetchBatch_InvalidCursor(t *testing.T) {
	src := newTestSource(t, channelHandler(t))

	_, err := src.FetchBatch(context.Background(), "0", 3)

	assert.Error(t, err)
}
