// Package feed serializes the published collection into syndication
// documents (RSS 2.0) and the XML sitemap.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/quietpress/quill/pkg/core"
)

// rss is the RSS 2.0 document root.
type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language,omitempty"`
	LastBuildDate string `xml:"lastBuildDate,omitempty"`
	Items         []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate"`
}

// Options configures feed generation.
type Options struct {
	Title       string
	Description string
	BaseURL     string
	Language    string
	Limit       int // max items; <= 0 means all
}

// RSS renders the feed for the given collection. The caller passes the full
// collection; drafts are always excluded here as a second line of defense.
func RSS(articles core.Collection, opts Options) ([]byte, error) {
	published := articles.Published().SortedByDate()
	if opts.Limit > 0 && len(published) > opts.Limit {
		published = published[:opts.Limit]
	}

	base := strings.TrimSuffix(opts.BaseURL, "/")

	items := make([]item, 0, len(published))
	for _, a := range published {
		link := a.Permalink(base)
		items = append(items, item{
			Title:       a.Title,
			Link:        link,
			GUID:        link,
			Description: a.Description,
			Category:    a.Category,
			PubDate:     a.Date.Format(time.RFC1123Z),
		})
	}

	doc := rss{
		Version: "2.0",
		Channel: channel{
			Title:       opts.Title,
			Link:        base + "/",
			Description: opts.Description,
			Language:    opts.Language,
			Items:       items,
		},
	}
	if len(published) > 0 {
		doc.Channel.LastBuildDate = published[0].Date.Format(time.RFC1123Z)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rss: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
