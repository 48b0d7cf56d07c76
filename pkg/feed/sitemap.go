package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/quietpress/quill/pkg/core"
)

type urlSet struct {
	XMLName xml.Name  `xml:"urlset"`
	XMLNS   string    `xml:"xmlns,attr"`
	URLs    []siteURL `xml:"url"`
}

type siteURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// staticRoutes are the non-article pages every build emits.
var staticRoutes = []string{"/", "/articles/", "/about/"}

// Sitemap renders sitemap.xml for the static routes plus every published
// article detail page.
func Sitemap(articles core.Collection, baseURL string) ([]byte, error) {
	base := strings.TrimSuffix(baseURL, "/")
	published := articles.Published().SortedByDate()

	urls := make([]siteURL, 0, len(published)+len(staticRoutes))

	var newest string
	if len(published) > 0 {
		newest = published[0].Date.Format("2006-01-02")
	} else {
		newest = time.Now().Format("2006-01-02")
	}
	for _, route := range staticRoutes {
		urls = append(urls, siteURL{Loc: base + route, LastMod: newest})
	}

	for _, a := range published {
		urls = append(urls, siteURL{
			Loc:     a.Permalink(base),
			LastMod: a.Date.Format("2006-01-02"),
		})
	}

	doc := urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
