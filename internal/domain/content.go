package domain

import (
	"fmt"
	"time"
)

// Kind identifies one mirrored collection.
type Kind string

const (
	KindPost    Kind = "post"
	KindEpisode Kind = "episode"
)

// Kinds lists every collection the mirror maintains.
var Kinds = []Kind{KindPost, KindEpisode}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "post", "posts":
		return KindPost, nil
	case "episode", "episodes":
		return KindEpisode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

const DefaultCategory = "General"

// Item is a normalized post or episode. Campaign fields are owned by the
// store and never come from a provider.
type Item struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Body        string    `json:"body,omitempty"`
	Description string    `json:"description,omitempty"`
	Excerpt     string    `json:"excerpt"`
	URL         string    `json:"url,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Author      string    `json:"author,omitempty"`
	Category    string    `json:"category,omitempty"`
	Labels      []string  `json:"labels,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	ReadingMinutes  int   `json:"readingMinutes,omitempty"`
	DurationSeconds int   `json:"durationSeconds,omitempty"`
	ViewCount       int64 `json:"viewCount,omitempty"`
	LikeCount       int64 `json:"likeCount,omitempty"`
	CommentCount    int64 `json:"commentCount,omitempty"`

	CampaignCreated   bool       `json:"campaignCreated"`
	CampaignID        string     `json:"campaignId,omitempty"`
	CampaignCreatedAt *time.Time `json:"campaignCreatedAt,omitempty"`
}

// Collection is the persisted document for one kind.
type Collection struct {
	Kind         Kind      `json:"kind"`
	LastSyncedAt time.Time `json:"lastSyncedAt"`
	CreatedAt    time.Time `json:"createdAt"`
	Items        []Item    `json:"items"`
}

func NewCollection(kind Kind, now time.Time) *Collection {
	return &Collection{
		Kind:      kind,
		CreatedAt: now,
		Items:     []Item{},
	}
}

// Clone returns a deep copy so callers can mutate items freely.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}
	out := *c
	out.Items = make([]Item, len(c.Items))
	for i, item := range c.Items {
		out.Items[i] = item.clone()
	}
	return &out
}

func (c *Collection) Synced() bool {
	return c != nil && !c.LastSyncedAt.IsZero()
}

func (c *Collection) FindByID(id string) (Item, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func (c *Collection) FindBySlug(slug string) (Item, bool) {
	for _, item := range c.Items {
		if item.Slug == slug {
			return item, true
		}
	}
	return Item{}, false
}

// KeepCampaignMarkers copies campaign markers from the persisted items onto
// c. A marker recorded while c was being built is never cleared by saving c.
func (c *Collection) KeepCampaignMarkers(persisted []Item) {
	marked := make(map[string]Item, len(persisted))
	for _, item := range persisted {
		if item.CampaignCreated {
			marked[item.ID] = item
		}
	}
	for i := range c.Items {
		prev, ok := marked[c.Items[i].ID]
		if !ok || c.Items[i].CampaignCreated {
			continue
		}
		c.Items[i].CampaignCreated = true
		c.Items[i].CampaignID = prev.CampaignID
		if prev.CampaignCreatedAt != nil {
			at := *prev.CampaignCreatedAt
			c.Items[i].CampaignCreatedAt = &at
		}
	}
}

func (i Item) clone() Item {
	if i.Labels != nil {
		i.Labels = append([]string(nil), i.Labels...)
	}
	if i.CampaignCreatedAt != nil {
		t := *i.CampaignCreatedAt
		i.CampaignCreatedAt = &t
	}
	return i
}

// Batch is one page of normalized items from a provider. NextCursor is empty
// on the last page.
type Batch struct {
	Items      []Item
	NextCursor string
}
