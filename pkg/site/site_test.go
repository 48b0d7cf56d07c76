package site_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietpress/quill/pkg/site"
)

const article = `---
title: Bench Power Supply
date: 2024-08-15
category: hardware
tags: [power, tools]
icon: circuit
description: Building a linear bench supply.
---
Transformers hum at **50Hz** here.
`

// scaffoldProject lays out a minimal project tree and returns the config path.
func scaffoldProject(t *testing.T) (configPath, outputDir string) {
	t.Helper()
	root := t.TempDir()

	contentDir := filepath.Join(root, "content")
	require.NoError(t, os.MkdirAll(contentDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "bench-psu.md"), []byte(article), 0644))

	outputDir = filepath.Join(root, "public")
	configPath = filepath.Join(root, "quill.yaml")
	cfg := "title: Bench Notes\nbase_url: https://bench.example.com\n" +
		"content_dir: " + contentDir + "\noutput_dir: " + outputDir + "\nsystem_dir: \"\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0644))
	return configPath, outputDir
}

func TestSiteBuild(t *testing.T) {
	configPath, outputDir := scaffoldProject(t)

	s, err := site.New(site.WithConfigFile(configPath))
	require.NoError(t, err)

	stats, err := s.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Articles)

	page, err := os.ReadFile(filepath.Join(outputDir, "articles", "bench-psu", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<strong>50Hz</strong>")
}

func TestSiteBuildMissingContentDir(t *testing.T) {
	root := t.TempDir()
	configPath := filepath.Join(root, "quill.yaml")
	cfg := "base_url: https://x.test\ncontent_dir: " + filepath.Join(root, "nope") + "\n" +
		"output_dir: " + filepath.Join(root, "public") + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0644))

	s, err := site.New(site.WithConfigFile(configPath))
	require.NoError(t, err)

	_, err = s.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content directory does not exist")
}

func TestSiteCheck(t *testing.T) {
	configPath, _ := scaffoldProject(t)

	s, err := site.New(site.WithConfigFile(configPath))
	require.NoError(t, err)

	articles, unknown, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 1)
	assert.Empty(t, unknown)
}

func TestSiteOptionOverrides(t *testing.T) {
	configPath, _ := scaffoldProject(t)
	altOut := t.TempDir()

	s, err := site.New(
		site.WithConfigFile(configPath),
		site.WithBaseURL("http://localhost:1414"),
		site.WithOutputDir(altOut),
	)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1414", s.Config.BaseURL)

	_, err = s.Build(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(altOut, "index.html"))
	assert.NoError(t, err)
}
