// Package search builds the JSON document index consumed by the
// client-side search script.
package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quietpress/quill/pkg/core"
)

// Entry is a single searchable document.
type Entry struct {
	ID          string   `json:"id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Group       string   `json:"group,omitempty"`
	Text        string   `json:"text"`
}

// Index serializes the published collection into the search index.
// Article bodies are reduced to plain text so the payload stays small
// and the client never has to strip markup.
func Index(articles core.Collection) ([]byte, error) {
	published := articles.Published().SortedByDate()

	entries := make([]Entry, 0, len(published))
	for _, a := range published {
		entries = append(entries, Entry{
			ID:          a.ID,
			URL:         a.Path(),
			Title:       a.Title,
			Subtitle:    a.Subtitle,
			Description: a.Description,
			Category:    a.Category,
			Tags:        a.Tags,
			Group:       a.Group,
			Text:        plainText(a.Body),
		})
	}

	out, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search index: %w", err)
	}
	return out, nil
}

// plainText strips markdown structure well enough for substring search:
// fenced code blocks go entirely, inline markers and link syntax are
// unwrapped, and whitespace collapses to single spaces.
func plainText(body string) string {
	var b strings.Builder
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		trimmed = strings.TrimLeft(trimmed, "#> ")
		trimmed = stripLinks(trimmed)
		trimmed = strings.NewReplacer("**", "", "*", "", "`", "", "_", "").Replace(trimmed)
		if trimmed == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(trimmed)
	}
	return b.String()
}

// stripLinks rewrites [label](target) to label.
func stripLinks(s string) string {
	for {
		open := strings.Index(s, "[")
		if open < 0 {
			return s
		}
		mid := strings.Index(s[open:], "](")
		if mid < 0 {
			return s
		}
		end := strings.Index(s[open+mid:], ")")
		if end < 0 {
			return s
		}
		label := s[open+1 : open+mid]
		s = s[:open] + label + s[open+mid+end+1:]
	}
}
