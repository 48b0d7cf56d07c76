// Package render turns validated articles into the static page set.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown converts article bodies to HTML.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown builds the shared goldmark instance. Raw HTML passthrough is
// enabled on purpose: authors own their content, there is no untrusted input.
func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(ghtml.WithUnsafe()),
		),
	}
}

// Render converts markdown source to HTML.
func (m *Markdown) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion failed: %w", err)
	}
	return template.HTML(buf.String()), nil
}
