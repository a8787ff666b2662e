// Package source holds the normalization shared by every provider adapter and
// the HTTP plumbing they use to talk to providers.
package source

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"content_mirror/internal/domain"
)

const (
	ExcerptLength  = 200
	WordsPerMinute = 200
)

// DefaultCategories is the allow-list a post label must match to become its
// category.
var DefaultCategories = []string{
	"Marketing",
	"Branding",
	"Business",
	"Podcast",
	"Productivity",
	"Strategy",
}

// Slugify lowercases s, collapses every run of characters outside [a-z0-9]
// into a single hyphen and trims hyphens from both ends.
func Slugify(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return sb.String()
}

// StripMarkup returns the visible text of an HTML fragment with whitespace
// collapsed. Script and style contents are dropped.
func StripMarkup(markup string) string {
	if markup == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	var sb strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.Script || a == atom.Style {
				skip++
			}
			sb.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); (a == atom.Script || a == atom.Style) && skip > 0 {
				skip--
			}
			sb.WriteByte(' ')
		case html.SelfClosingTagToken:
			sb.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

// Excerpt truncates text to n runes, appending an ellipsis when it cut.
func Excerpt(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "..."
}

// FirstImage returns the src of the first <img> in markup, or "".
func FirstImage(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if atom.Lookup(name) != atom.Img {
				continue
			}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "src" && len(val) > 0 {
					return string(val)
				}
			}
		}
	}
}

// ReadingMinutes estimates reading time for plain text, never below one.
func ReadingMinutes(text string) int {
	words := len(strings.Fields(text))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Category picks the first label present in allow (case-insensitive) and
// returns it in its allow-list spelling.
func Category(labels, allow []string) string {
	for _, label := range labels {
		for _, candidate := range allow {
			if strings.EqualFold(strings.TrimSpace(label), candidate) {
				return candidate
			}
		}
	}
	return domain.DefaultCategory
}

// PostFields is the provider-neutral shape of a blog post before
// normalization.
type PostFields struct {
	ID          string
	Title       string
	Markup      string
	URL         string
	Author      string
	Labels      []string
	ImageURL    string
	PublishedAt time.Time
	UpdatedAt   time.Time
}

// NormalizePost derives slug, excerpt, image, reading time and category.
func NormalizePost(f PostFields, categories []string) domain.Item {
	text := StripMarkup(f.Markup)
	image := FirstImage(f.Markup)
	if image == "" {
		image = f.ImageURL
	}
	updated := f.UpdatedAt
	if updated.IsZero() {
		updated = f.PublishedAt
	}
	return domain.Item{
		ID:             f.ID,
		Kind:           domain.KindPost,
		Slug:           Slugify(f.Title),
		Title:          strings.TrimSpace(f.Title),
		Body:           f.Markup,
		Excerpt:        Excerpt(text, ExcerptLength),
		URL:            f.URL,
		ImageURL:       image,
		Author:         f.Author,
		Category:       Category(f.Labels, categories),
		Labels:         f.Labels,
		PublishedAt:    f.PublishedAt.UTC(),
		UpdatedAt:      updated.UTC(),
		ReadingMinutes: ReadingMinutes(text),
	}
}
