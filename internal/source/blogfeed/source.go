// Package blogfeed reads the blog through its Atom/RSS feed instead of the
// JSON API. Pages are addressed by start-index.
package blogfeed

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"content_mirror/internal/domain"
	"content_mirror/internal/source"
)

const (
	SourceID   = "blogfeed"
	SourceName = "Blog feed"

	feedAccept = "application/atom+xml, application/rss+xml, application/xml;q=0.9, */*;q=0.8"
)

type Config struct {
	FeedURL    string
	Categories []string
	Client     source.ClientConfig
}

type Source struct {
	client     *source.Client
	parser     *gofeed.Parser
	feedURL    string
	categories []string
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	categories := cfg.Categories
	if len(categories) == 0 {
		categories = source.DefaultCategories
	}
	logger = logger.With("source", SourceID)
	return &Source{
		client:     source.NewClient(cfg.Client, logger),
		parser:     gofeed.NewParser(),
		feedURL:    cfg.FeedURL,
		categories: categories,
		logger:     logger,
	}
}

func (s *Source) ID() string {
	return SourceID
}

func (s *Source) Name() string {
	return SourceName
}

func (s *Source) Kind() domain.Kind {
	return domain.KindPost
}

// FetchBatch fetches max-results entries starting at the 1-based index in
// cursor.
func (s *Source) FetchBatch(ctx context.Context, cursor string, maxResults int) (*domain.Batch, error) {
	start := 1
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid feed cursor %q", cursor)
		}
		start = n
	}

	endpoint, err := url.Parse(s.feedURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}
	q := endpoint.Query()
	q.Set("start-index", strconv.Itoa(start))
	q.Set("max-results", strconv.Itoa(maxResults))
	endpoint.RawQuery = q.Encode()

	body, err := s.client.Get(ctx, endpoint.String(), feedAccept)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	feed, err := s.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse feed: %v", domain.ErrProviderUnavailable, err)
	}

	batch := &domain.Batch{Items: s.transform(feed.Items)}
	if maxResults > 0 && len(feed.Items) >= maxResults {
		batch.NextCursor = strconv.Itoa(start + len(feed.Items))
	}

	s.logger.Debug("fetched feed page",
		"start_index", start,
		"entries", len(feed.Items),
	)

	return batch, nil
}

func (s *Source) transform(entries []*gofeed.Item) []domain.Item {
	items := make([]domain.Item, 0, len(entries))

	for _, e := range entries {
		id := entryID(e)
		if id == "" || e.PublishedParsed == nil {
			s.logger.Warn("skipping feed entry", "guid", e.GUID, "link", e.Link)
			continue
		}

		markup := e.Content
		if markup == "" {
			markup = e.Description
		}

		fields := source.PostFields{
			ID:          id,
			Title:       e.Title,
			Markup:      markup,
			URL:         e.Link,
			Labels:      e.Categories,
			PublishedAt: *e.PublishedParsed,
		}
		if e.UpdatedParsed != nil {
			fields.UpdatedAt = *e.UpdatedParsed
		}
		if len(e.Authors) > 0 && e.Authors[0] != nil {
			fields.Author = e.Authors[0].Name
		}
		if e.Image != nil {
			fields.ImageURL = e.Image.URL
		}

		items = append(items, source.NormalizePost(fields, s.categories))
	}

	return items
}

// entryID maps Blogger atom ids (tag:blogger.com,1999:blog-1.post-42) to the
// bare post id used by the JSON API, so both blog sources share a store.
func entryID(e *gofeed.Item) string {
	guid := strings.TrimSpace(e.GUID)
	if i := strings.LastIndex(guid, ".post-"); i >= 0 {
		return guid[i+len(".post-"):]
	}
	if guid != "" {
		return guid
	}
	return strings.TrimSpace(e.Link)
}
