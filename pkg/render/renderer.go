package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/quietpress/quill/pkg/core"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// SiteInfo is the static page chrome: everything templates need that does
// not come from the article collection.
type SiteInfo struct {
	Title       string
	Description string
	BaseURL     string
	Author      core.Author
	Social      []core.SocialLink
	RecentCount int
	Mermaid     bool
	KaTeX       bool
	LiveReload  bool
}

// Renderer renders the site's page set from validated articles.
type Renderer struct {
	site SiteInfo
	tmpl *template.Template
	md   *Markdown
}

// New parses the embedded template set.
func New(site SiteInfo) (*Renderer, error) {
	if site.RecentCount <= 0 {
		site.RecentCount = 5
	}

	funcs := template.FuncMap{
		"glyph": Icon,
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"isodate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
	}

	tmpl, err := template.New("site").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		site: site,
		tmpl: tmpl,
		md:   NewMarkdown(),
	}, nil
}

// pageData is the root object handed to every template.
type pageData struct {
	Site     SiteInfo
	Title    string
	Recent   core.Collection
	Featured core.Collection
	Grouped  []core.GroupedArticles
	All      core.Collection
	Article  *articleView
}

// articleView decorates an Article with its rendered body and display bits.
type articleView struct {
	core.Article
	HTML      template.HTML
	IconGlyph string
}

func (r *Renderer) execute(name string, data pageData) ([]byte, error) {
	data.Site = r.site

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Index renders the landing page: featured work plus the most recent
// articles. The input collection must already be the public (draft-free) set.
func (r *Renderer) Index(articles core.Collection) ([]byte, error) {
	return r.execute("index", pageData{
		Title:    r.site.Title,
		Featured: articles.Featured(),
		Recent:   articles.Recent(r.site.RecentCount),
	})
}

// Articles renders the full listing page with its taxonomy sections.
func (r *Renderer) Articles(articles core.Collection, grouped []core.GroupedArticles) ([]byte, error) {
	return r.execute("articles", pageData{
		Title:   "Articles · " + r.site.Title,
		All:     articles.SortedByDate(),
		Grouped: grouped,
	})
}

// Article renders a detail page, converting the markdown body to HTML.
func (r *Renderer) Article(a core.Article) ([]byte, error) {
	body, err := r.md.Render(a.Body)
	if err != nil {
		return nil, fmt.Errorf("article %s: %w", a.ID, err)
	}

	return r.execute("article", pageData{
		Title: a.Title + " · " + r.site.Title,
		Article: &articleView{
			Article:   a,
			HTML:      body,
			IconGlyph: Icon(a.Icon),
		},
	})
}

// About renders the author page.
func (r *Renderer) About() ([]byte, error) {
	return r.execute("about", pageData{
		Title: "About · " + r.site.Title,
	})
}

// NotFound renders the 404 fallback page.
func (r *Renderer) NotFound() ([]byte, error) {
	return r.execute("404", pageData{
		Title: "Not Found · " + r.site.Title,
	})
}
