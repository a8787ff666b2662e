// Package video adapts a channel-scoped video platform API to episodes.
package video

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"content_mirror/internal/domain"
	"content_mirror/internal/source"
)

const (
	SourceID   = "video"
	SourceName = "Video channel"

	DefaultMinDuration = 60 * time.Second

	// detailBatchSize caps the ids sent in one detail call.
	detailBatchSize = 50
)

type Config struct {
	BaseURL     string
	ChannelID   string
	MinDuration time.Duration
	Client      source.ClientConfig
}

type Source struct {
	client      *source.Client
	baseURL     string
	channelID   string
	minDuration time.Duration
	logger      *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	minDuration := cfg.MinDuration
	if minDuration <= 0 {
		minDuration = DefaultMinDuration
	}
	logger = logger.With("source", SourceID)
	return &Source{
		client:      source.NewClient(cfg.Client, logger),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		channelID:   cfg.ChannelID,
		minDuration: minDuration,
		logger:      logger,
	}
}

func (s *Source) ID() string {
	return SourceID
}

func (s *Source) Name() string {
	return SourceName
}

func (s *Source) Kind() domain.Kind {
	return domain.KindEpisode
}

// FetchBatch fetches one page of the channel listing. cursor is the 1-based
// page number; empty means the first page.
func (s *Source) FetchBatch(ctx context.Context, cursor string, maxResults int) (*domain.Batch, error) {
	page := 1
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page cursor %q", cursor)
		}
		page = n
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(maxResults))
	endpoint := fmt.Sprintf("%s/channels/%s/videos?%s", s.baseURL, url.PathEscape(s.channelID), q.Encode())

	var list VideoList
	if err := s.client.GetJSON(ctx, endpoint, &list); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	ids := lo.FilterMap(list.Data, func(v Video, _ int) (string, bool) {
		return v.ID, v.ID != ""
	})
	details, err := s.fetchDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	batch := &domain.Batch{Items: s.transform(list.Data, details)}
	if page < list.Paging.TotalPages {
		batch.NextCursor = strconv.Itoa(page + 1)
	}

	s.logger.Debug("fetched page",
		"page", page,
		"videos", len(list.Data),
		"kept", len(batch.Items),
	)

	return batch, nil
}

func (s *Source) fetchDetails(ctx context.Context, ids []string) (map[string]Detail, error) {
	details := make(map[string]Detail, len(ids))

	for _, chunk := range lo.Chunk(ids, detailBatchSize) {
		q := url.Values{}
		q.Set("ids", strings.Join(chunk, ","))
		endpoint := fmt.Sprintf("%s/videos?%s", s.baseURL, q.Encode())

		var list DetailList
		if err := s.client.GetJSON(ctx, endpoint, &list); err != nil {
			return nil, fmt.Errorf("video details: %w", err)
		}
		for _, d := range list.Data {
			details[d.ID] = d
		}
	}

	return details, nil
}

func (s *Source) transform(videos []Video, details map[string]Detail) []domain.Item {
	items := make([]domain.Item, 0, len(videos))

	for _, v := range videos {
		if v.ID == "" {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, v.PublishedAt)
		if err != nil {
			s.logger.Warn("failed to parse date",
				"external_id", v.ID,
				"date", v.PublishedAt,
			)
			continue
		}
		updatedAt, err := time.Parse(time.RFC3339, v.UpdatedAt)
		if err != nil {
			updatedAt = publishedAt
		}

		description := source.StripMarkup(v.Description)
		item := domain.Item{
			ID:          v.ID,
			Kind:        domain.KindEpisode,
			Slug:        source.Slugify(v.Title),
			Title:       strings.TrimSpace(v.Title),
			Description: v.Description,
			Excerpt:     source.Excerpt(description, source.ExcerptLength),
			URL:         v.URL,
			ImageURL:    v.ThumbnailURL,
			Category:    domain.DefaultCategory,
			PublishedAt: publishedAt.UTC(),
			UpdatedAt:   updatedAt.UTC(),
		}

		if d, ok := details[v.ID]; ok {
			if d.DurationSeconds != nil {
				if time.Duration(*d.DurationSeconds)*time.Second < s.minDuration {
					s.logger.Debug("skipping short video",
						"external_id", v.ID,
						"duration_seconds", *d.DurationSeconds,
					)
					continue
				}
				item.DurationSeconds = *d.DurationSeconds
			}
			item.ViewCount = lo.FromPtr(d.ViewCount)
			item.LikeCount = lo.FromPtr(d.LikeCount)
			item.CommentCount = lo.FromPtr(d.CommentCount)
		}

		items = append(items, item)
	}

	return items
}
