package fs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietpress/quill/pkg/core"
)

const yamlDoc = `---
title: Regex Extraction Pipelines
date: 2025-04-02
tags:
  - regex
  - go
draft: false
---

The body starts here.
`

const tomlDoc = `+++
title = "Vector Search Abstractions"
date = 2025-04-03T09:00:00Z
tags = ["search", "embeddings"]
+++

TOML body.
`

func TestParseDocument(t *testing.T) {
	codecs := DefaultCodecs()

	t.Run("YAML Fence", func(t *testing.T) {
		meta, body, err := parseDocument([]byte(yamlDoc), codecs)
		require.NoError(t, err)

		assert.Equal(t, "Regex Extraction Pipelines", meta["title"])
		assert.Equal(t, "The body starts here.\n", body)

		tags, ok := meta["tags"].([]any)
		require.True(t, ok, "tags should decode as a list, got %T", meta["tags"])
		assert.Equal(t, []any{"regex", "go"}, tags)
	})

	t.Run("TOML Fence", func(t *testing.T) {
		meta, body, err := parseDocument([]byte(tomlDoc), codecs)
		require.NoError(t, err)

		assert.Equal(t, "Vector Search Abstractions", meta["title"])
		assert.Equal(t, "TOML body.\n", body)

		date, ok := meta["date"].(time.Time)
		require.True(t, ok, "TOML date-time should decode as time.Time, got %T", meta["date"])
		assert.Equal(t, 2025, date.Year())
	})

	t.Run("No Front-Matter Is Rejected", func(t *testing.T) {
		_, _, err := parseDocument([]byte("just prose, no fences\n"), codecs)
		assert.ErrorIs(t, err, core.ErrNoFrontMatter)
	})

	t.Run("Unclosed Fence Is Rejected", func(t *testing.T) {
		_, _, err := parseDocument([]byte("---\ntitle: Broken\n"), codecs)
		assert.ErrorIs(t, err, core.ErrUnclosedFences)
	})

	t.Run("Literal Dashes In Body Survive", func(t *testing.T) {
		doc := "---\ntitle: T\n---\n\nsome text\n\n---\n\nmore text after a rule\n"
		_, body, err := parseDocument([]byte(doc), DefaultCodecs())
		require.NoError(t, err)
		assert.Contains(t, body, "more text after a rule")
	})
}

func TestCodecRoundTrip(t *testing.T) {
	meta := core.Metadata{
		"title": "Scaffolded",
		"tags":  []string{"a", "b"},
		"draft": true,
	}

	for _, codec := range DefaultCodecs() {
		data, err := codec.Format(meta, "Hello.\n")
		require.NoError(t, err)
		require.True(t, codec.Opens(data))

		parsed, body, err := codec.Parse(data)
		require.NoError(t, err)
		assert.Equal(t, "Scaffolded", parsed["title"])
		assert.Equal(t, "Hello.\n", body)
		assert.Equal(t, true, parsed["draft"])
	}
}
