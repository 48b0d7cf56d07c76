package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietpress/quill/pkg/core"
)

// A freshly scaffolded article must validate on the very next build, with
// nothing but the ID supplied.
func TestScaffoldMetadataValidates(t *testing.T) {
	meta := scaffoldMetadata("pipelines/retry-budgets")

	a, err := core.DecodeArticle("pipelines/retry-budgets", meta, "Write here.\n")
	require.NoError(t, err)

	assert.Equal(t, "Retry Budgets", a.Title)
	assert.True(t, a.Draft)
	assert.NotEmpty(t, a.Description)
}

func TestScaffoldMetadataHonorsFlags(t *testing.T) {
	newTitle = "Hand-Picked Title"
	newDescription = "A one-liner."
	newGroup = "systems"
	t.Cleanup(func() {
		newTitle = ""
		newDescription = ""
		newGroup = ""
	})

	meta := scaffoldMetadata("some-id")

	a, err := core.DecodeArticle("some-id", meta, "")
	require.NoError(t, err)
	assert.Equal(t, "Hand-Picked Title", a.Title)
	assert.Equal(t, "A one-liner.", a.Description)
	assert.Equal(t, "systems", a.Group)
}

func TestTitleFromID(t *testing.T) {
	cases := map[string]string{
		"retry-budgets":           "Retry Budgets",
		"pipelines/retry-budgets": "Retry Budgets",
		"snake_case_slug":         "Snake Case Slug",
		"single":                  "Single",
	}
	for id, want := range cases {
		assert.Equal(t, want, titleFromID(id), "id %q", id)
	}
}
