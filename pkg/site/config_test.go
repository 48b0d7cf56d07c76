package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
title: Workshop Notes
description: Notes from the bench.
base_url: https://notes.example.com
author:
  name: Sam Builder
social:
  - name: GitHub
    url: https://github.com/sam
    icon: github
groups:
  - id: ee
    name: Electrical Engineering
    order: 1
recent_count: 7
feed:
  limit: 10
markdown:
  mermaid: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig), nil)
	require.NoError(t, err)

	assert.Equal(t, "Workshop Notes", cfg.Title)
	assert.Equal(t, "https://notes.example.com", cfg.BaseURL)
	assert.Equal(t, "Sam Builder", cfg.Author.Name)
	assert.Equal(t, 7, cfg.RecentCount)
	assert.Equal(t, 10, cfg.Feed.Limit)
	assert.True(t, cfg.Markdown.Mermaid)
	assert.False(t, cfg.Markdown.KaTeX)
	require.Len(t, cfg.Groups, 1)
	assert.Equal(t, "ee", cfg.Groups[0].ID)

	t.Run("Defaults Fill Omitted Fields", func(t *testing.T) {
		assert.Equal(t, "content", cfg.ContentDir)
		assert.Equal(t, "public", cfg.OutputDir)
		assert.True(t, cfg.FeedEnabled())
	})
}

func TestLoadConfigMissingBaseURL(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "title: No Base\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("QUILL_BASE_URL", "https://override.example.com")
	t.Setenv("QUILL_RECENT_COUNT", "2")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", cfg.BaseURL)
	assert.Equal(t, 2, cfg.RecentCount)
}

func TestFeedEnabled(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "base_url: https://x.test\nfeed:\n  enabled: false\n"), nil)
	require.NoError(t, err)
	assert.False(t, cfg.FeedEnabled())
}
