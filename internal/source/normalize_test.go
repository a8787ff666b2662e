package source

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"content_mirror/internal/domain"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Ten Tips: Branding & You!  ", "ten-tips-branding-you"},
		{"Ünïcode—Title 2026", "n-code-title-2026"},
		{"---", ""},
		{"already-a-slug", "already-a-slug"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestStripMarkup(t *testing.T) {
	markup := `<div><h1>Title</h1><script>var x = "<b>no</b>";</script><p>First&nbsp;para &amp; more</p>
<style>p { color: red }</style><p>Second</p></div>`

	assert.Equal(t, "Title First para & more Second", StripMarkup(markup))
	assert.Equal(t, "", StripMarkup(""))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 10))
	assert.Equal(t, "abcde...", Excerpt("abcdefghij", 5))
	assert.Equal(t, "héllo...", Excerpt("héllo wörld", 5))
}

func TestFirstImage(t *testing.T) {
	markup := `<p>intro</p><img alt="x"><img src="https://img.example.com/a.png"/><img src="b.png">`
	assert.Equal(t, "https://img.example.com/a.png", FirstImage(markup))
	assert.Equal(t, "", FirstImage("<p>no images</p>"))
}

func TestReadingMinutes(t *testing.T) {
	assert.Equal(t, 1, ReadingMinutes(""))
	assert.Equal(t, 1, ReadingMinutes(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, ReadingMinutes(strings.Repeat("word ", 201)))
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "Branding", Category([]string{"misc", "branding", "Marketing"}, DefaultCategories))
	assert.Equal(t, domain.DefaultCategory, Category([]string{"misc"}, DefaultCategories))
	assert.Equal(t, domain.DefaultCategory, Category(nil, DefaultCategories))
}

func TestNormalizePost(t *testing.T) {
	published := time.Date(2026, 2, 1, 9, 30, 0, 0, time.FixedZone("EST", -5*3600))

	item := NormalizePost(PostFields{
		ID:          "42",
		Title:       " Growth Loops 101 ",
		Markup:      `<p>Loops <img src="https://img.example.com/loop.png"> compound.</p>`,
		URL:         "https://blog.example.com/42",
		Author:      "Ana",
		Labels:      []string{"news", "Strategy"},
		ImageURL:    "https://img.example.com/fallback.png",
		PublishedAt: published,
	}, DefaultCategories)

	assert.Equal(t, "42", item.ID)
	assert.Equal(t, domain.KindPost, item.Kind)
	assert.Equal(t, "growth-loops-101", item.Slug)
	assert.Equal(t, "Growth Loops 101", item.Title)
	assert.Equal(t, "Loops compound.", item.Excerpt)
	assert.Equal(t, "https://img.example.com/loop.png", item.ImageURL)
	assert.Equal(t, "Strategy", item.Category)
	assert.Equal(t, 1, item.ReadingMinutes)
	assert.Equal(t, time.UTC, item.PublishedAt.Location())
	assert.True(t, item.UpdatedAt.Equal(published))
	assert.False(t, item.CampaignCreated)
}
