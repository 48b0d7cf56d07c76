// Article is the central entity of the domain.
package core

import (
	"strings"
	"time"
)

// Metadata represents the raw key-value pairs of a front-matter block
// before schema coercion.
type Metadata map[string]any

// Article is a validated content record.
// The ID is the content-relative path with the extension stripped
// (e.g. "building-a-vector-store"), which doubles as the URL slug.
type Article struct {
	ID          string    `yaml:"-"`
	Title       string    `yaml:"title" validate:"required"`
	Subtitle    string    `yaml:"subtitle"`
	Date        time.Time `yaml:"date" validate:"required"`
	Category    string    `yaml:"category" validate:"required"`
	Tags        []string  `yaml:"tags" validate:"required,min=1"`
	Icon        string    `yaml:"icon" validate:"required"`
	IconColor   string    `yaml:"iconColor"`
	Description string    `yaml:"description" validate:"required"`
	Links       []Link    `yaml:"links" validate:"omitempty,dive"`
	Group       string    `yaml:"group"`
	Draft       bool      `yaml:"draft"`
	Featured    bool      `yaml:"featured"`

	// Body is the raw markdown following the front-matter block.
	Body string `yaml:"-"`
}

// Link is an external media or source reference attached to an article.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url" validate:"required,url"`
}

// Path returns the site-relative route of the article's detail page.
func (a Article) Path() string {
	return "/articles/" + a.ID + "/"
}

// Permalink returns the absolute URL of the article under the given base.
func (a Article) Permalink(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + a.Path()
}

// Group is a taxonomy entry used to cluster related articles for display.
// Groups are hand-maintained in site configuration and referenced from
// Article.Group by ID; they are never derived from article records.
type Group struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
	Order       int    `yaml:"order"`
}

// Author identifies the site owner for feeds and page metadata.
type Author struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	URL   string `yaml:"url"`
}

// SocialLink is a profile link rendered in the site footer and about page.
type SocialLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Icon string `yaml:"icon"`
}
