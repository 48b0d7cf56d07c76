package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietpress/quill/pkg/core"
)

func feedCollection() core.Collection {
	return core.Collection{
		{
			ID:          "older",
			Title:       "Older Post",
			Date:        time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
			Category:    "engineering",
			Tags:        []string{"go"},
			Icon:        "pen",
			Description: "The older one.",
		},
		{
			ID:          "hidden",
			Title:       "Hidden Draft",
			Date:        time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
			Category:    "engineering",
			Tags:        []string{"go"},
			Icon:        "pen",
			Description: "Never published.",
			Draft:       true,
		},
		{
			ID:          "pipelines/newer",
			Title:       "Newer Post",
			Date:        time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
			Category:    "engineering",
			Tags:        []string{"go"},
			Icon:        "pen",
			Description: "The newer one.",
		},
	}
}

func TestRSS(t *testing.T) {
	out, err := RSS(feedCollection(), Options{
		Title:       "Test Feed",
		Description: "Feed under test.",
		BaseURL:     "https://example.com/",
	})
	require.NoError(t, err)
	doc := string(out)

	t.Run("Excludes Drafts", func(t *testing.T) {
		assert.NotContains(t, doc, "Hidden Draft")
	})

	t.Run("Newest First", func(t *testing.T) {
		newer := strings.Index(doc, "Newer Post")
		older := strings.Index(doc, "Older Post")
		require.True(t, newer >= 0 && older >= 0)
		assert.Less(t, newer, older)
	})

	t.Run("Item Links Use Pretty Article URLs", func(t *testing.T) {
		assert.Contains(t, doc, "<link>https://example.com/articles/pipelines/newer/</link>")
		assert.Contains(t, doc, "<link>https://example.com/articles/older/</link>")
	})

	t.Run("Dates Are RFC1123Z", func(t *testing.T) {
		assert.Contains(t, doc, "Sun, 02 Mar 2025 09:00:00 +0000")
	})

	t.Run("Channel Link Has Trailing Slash", func(t *testing.T) {
		assert.Contains(t, doc, "<link>https://example.com/</link>")
	})
}

func TestRSSLimit(t *testing.T) {
	out, err := RSS(feedCollection(), Options{
		Title:   "Test Feed",
		BaseURL: "https://example.com",
		Limit:   1,
	})
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "Newer Post")
	assert.NotContains(t, doc, "Older Post")
}

func TestSitemap(t *testing.T) {
	out, err := Sitemap(feedCollection(), "https://example.com")
	require.NoError(t, err)
	doc := string(out)

	t.Run("Static Routes Present", func(t *testing.T) {
		assert.Contains(t, doc, "<loc>https://example.com/</loc>")
		assert.Contains(t, doc, "<loc>https://example.com/articles/</loc>")
		assert.Contains(t, doc, "<loc>https://example.com/about/</loc>")
	})

	t.Run("Article Pages Present With Lastmod", func(t *testing.T) {
		assert.Contains(t, doc, "<loc>https://example.com/articles/older/</loc>")
		assert.Contains(t, doc, "<lastmod>2025-01-10</lastmod>")
	})

	t.Run("Excludes Drafts", func(t *testing.T) {
		assert.NotContains(t, doc, "hidden")
	})
}
