// Package blogger adapts a Blogger-style posts API to the mirror's item shape.
package blogger

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"content_mirror/internal/domain"
	"content_mirror/internal/source"
)

const (
	SourceID   = "blogger"
	SourceName = "Blog"

	DefaultBaseURL = "https://www.googleapis.com/blogger/v3"
)

// Config holds blog source configuration.
type Config struct {
	BaseURL    string
	BlogID     string
	APIKey     string
	Categories []string
	Client     source.ClientConfig
}

// Source implements the blog provider adapter.
type Source struct {
	client     *source.Client
	baseURL    string
	blogID     string
	apiKey     string
	categories []string
	logger     *slog.Logger
}

// New creates a new blog source.
func New(cfg Config, logger *slog.Logger) *Source {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	categories := cfg.Categories
	if len(categories) == 0 {
		categories = source.DefaultCategories
	}
	logger = logger.With("source", SourceID)
	return &Source{
		client:     source.NewClient(cfg.Client, logger),
		baseURL:    baseURL,
		blogID:     cfg.BlogID,
		apiKey:     cfg.APIKey,
		categories: categories,
		logger:     logger,
	}
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return SourceID
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

func (s *Source) Kind() domain.Kind {
	return domain.KindPost
}

// FetchBatch fetches one page of posts. cursor is the opaque page token
// returned by the previous page.
func (s *Source) FetchBatch(ctx context.Context, cursor string, maxResults int) (*domain.Batch, error) {
	q := url.Values{}
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("fetchImages", "true")
	q.Set("status", "live")
	if cursor != "" {
		q.Set("pageToken", cursor)
	}
	if s.apiKey != "" {
		q.Set("key", s.apiKey)
	}
	endpoint := fmt.Sprintf("%s/blogs/%s/posts?%s", s.baseURL, url.PathEscape(s.blogID), q.Encode())

	var list PostList
	if err := s.client.GetJSON(ctx, endpoint, &list); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	s.logger.Debug("fetched page",
		"posts", len(list.Items),
		"has_next", list.NextPageToken != "",
	)

	return &domain.Batch{
		Items:      s.transform(list.Items),
		NextCursor: list.NextPageToken,
	}, nil
}

// FetchByID fetches a single post by its provider id.
func (s *Source) FetchByID(ctx context.Context, id string) (*domain.Item, error) {
	q := url.Values{}
	q.Set("fetchImages", "true")
	if s.apiKey != "" {
		q.Set("key", s.apiKey)
	}
	endpoint := fmt.Sprintf("%s/blogs/%s/posts/%s?%s",
		s.baseURL, url.PathEscape(s.blogID), url.PathEscape(id), q.Encode())

	var post Post
	if err := s.client.GetJSON(ctx, endpoint, &post); err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}

	items := s.transform([]Post{post})
	if len(items) == 0 {
		return nil, fmt.Errorf("get post %s: %w", id, domain.ErrNotFound)
	}
	return &items[0], nil
}

func (s *Source) transform(posts []Post) []domain.Item {
	items := make([]domain.Item, 0, len(posts))

	for _, p := range posts {
		if p.ID == "" {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, p.Published)
		if err != nil {
			s.logger.Warn("failed to parse date",
				"external_id", p.ID,
				"date", p.Published,
			)
			continue
		}
		updatedAt, _ := time.Parse(time.RFC3339, p.Updated)

		fields := source.PostFields{
			ID:          p.ID,
			Title:       p.Title,
			Markup:      p.Content,
			URL:         p.URL,
			Labels:      p.Labels,
			PublishedAt: publishedAt,
			UpdatedAt:   updatedAt,
		}
		if p.Author != nil {
			fields.Author = p.Author.DisplayName
		}
		if len(p.Images) > 0 {
			fields.ImageURL = p.Images[0].URL
		}

		items = append(items, source.NormalizePost(fields, s.categories))
	}

	return items
}
