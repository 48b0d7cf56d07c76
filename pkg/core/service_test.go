package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory Source for service tests.
type fakeSource struct {
	docs []Document
}

func (f *fakeSource) Load(ctx context.Context) ([]Document, error) { return f.docs, nil }

func (f *fakeSource) Get(ctx context.Context, id string) (Document, error) {
	for _, d := range f.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return Document{}, ErrNotFound
}

func (f *fakeSource) Initialize(ctx context.Context) error { return nil }

func doc(id string, extra Metadata) Document {
	meta := Metadata{
		"title":       "Title of " + id,
		"date":        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		"category":    "engineering",
		"tags":        []any{"go"},
		"icon":        "pen",
		"description": "desc",
	}
	for k, v := range extra {
		if v == nil {
			delete(meta, k)
			continue
		}
		meta[k] = v
	}
	return Document{ID: id, Metadata: meta, Body: "body of " + id}
}

func TestLoadAll(t *testing.T) {
	t.Run("Loads And Decodes Everything", func(t *testing.T) {
		svc := NewService(&fakeSource{docs: []Document{doc("a", nil), doc("b", nil)}})

		articles, err := svc.LoadAll(context.Background())
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, "Title of a", articles[0].Title)
	})

	t.Run("Fails If Any Article Is Invalid", func(t *testing.T) {
		svc := NewService(&fakeSource{docs: []Document{
			doc("good", nil),
			doc("no-title", Metadata{"title": nil}),
			doc("no-icon", Metadata{"icon": nil}),
		}})

		_, err := svc.LoadAll(context.Background())
		require.Error(t, err)

		verrs, ok := err.(ValidationErrors)
		require.True(t, ok, "expected ValidationErrors, got %T", err)
		require.Len(t, verrs, 2, "every broken article must be reported")
		assert.Equal(t, "no-title", verrs[0].ID)
		assert.Equal(t, "no-icon", verrs[1].ID)
	})
}

func TestGetArticle(t *testing.T) {
	svc := NewService(&fakeSource{docs: []Document{doc("a", nil)}})

	a, err := svc.GetArticle(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", a.ID)

	_, err = svc.GetArticle(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWatchUnsupported(t *testing.T) {
	svc := NewService(&fakeSource{})
	_, err := svc.Watch(context.Background(), "**/*.md")
	assert.Error(t, err)
}
