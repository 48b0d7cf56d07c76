package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietpress/quill/pkg/core"
)

// waitEvent pulls events until one for wantID arrives. Unrelated IDs are
// drained so a test never trips over noise from an earlier stage.
func waitEvent(t *testing.T, events <-chan core.Event, wantID string) core.Event {
	t.Helper()

	timeout := time.After(3 * time.Second)
	for {
		select {
		case e, ok := <-events:
			require.True(t, ok, "event channel closed while waiting for %q", wantID)
			if e.ID == wantID {
				return e
			}
		case <-timeout:
			t.Fatalf("no event for %q", wantID)
		}
	}
}

func drainQuiet(events <-chan core.Event, quiet time.Duration) {
	for {
		select {
		case <-events:
		case <-time.After(quiet):
			return
		}
	}
}

func TestWatch(t *testing.T) {
	source, dir := setupSource(t, map[string]string{"seed.md": minimalArticle})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := source.Watch(ctx, "")
	require.NoError(t, err)

	t.Run("New File Emits Event", func(t *testing.T) {
		path := filepath.Join(dir, "fresh.md")
		require.NoError(t, os.WriteFile(path, []byte(minimalArticle), 0644))

		e := waitEvent(t, events, "fresh")
		// The create and the write coalesce inside the debounce window,
		// so either type is a correct answer.
		assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
	})

	t.Run("Modify Emits Event", func(t *testing.T) {
		drainQuiet(events, 200*time.Millisecond)

		path := filepath.Join(dir, "seed.md")
		require.NoError(t, os.WriteFile(path, []byte(minimalArticle+"\nMore.\n"), 0644))

		e := waitEvent(t, events, "seed")
		assert.Equal(t, core.EventModify, e.Type)
	})

	t.Run("Delete Emits Event", func(t *testing.T) {
		drainQuiet(events, 200*time.Millisecond)

		require.NoError(t, os.Remove(filepath.Join(dir, "fresh.md")))

		e := waitEvent(t, events, "fresh")
		assert.Equal(t, core.EventDelete, e.Type)
	})

	t.Run("Non-Matching Files Are Ignored", func(t *testing.T) {
		drainQuiet(events, 200*time.Millisecond)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.md"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "visible.md"), []byte(minimalArticle), 0644))

		e := waitEvent(t, events, "visible")
		assert.Equal(t, "visible", e.ID)
	})
}

// A rapid editor save burst must coalesce into few events and, above all,
// must not take the watcher down.
func TestWatchSaveBurst(t *testing.T) {
	source, dir := setupSource(t, map[string]string{"seed.md": minimalArticle})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := source.Watch(ctx, "")
	require.NoError(t, err)

	path := filepath.Join(dir, "seed.md")
	for i := 0; i < 200; i++ {
		require.NoError(t, os.WriteFile(path, []byte(minimalArticle), 0644))
	}

	waitEvent(t, events, "seed")
	drainQuiet(events, 300*time.Millisecond)

	// The watcher must still be alive and delivering after the burst.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "after.md"), []byte(minimalArticle), 0644))
	e := waitEvent(t, events, "after")
	assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
}

func TestWatchHonorsPattern(t *testing.T) {
	source, dir := setupSource(t, map[string]string{"seed.md": minimalArticle})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := source.Watch(ctx, "drafts/**")
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "drafts"), 0755))
	// Give the watcher a beat to pick up the new directory.
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "outside.md"), []byte(minimalArticle), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drafts", "inside.md"), []byte(minimalArticle), 0644))

	e := waitEvent(t, events, "drafts/inside")
	assert.Equal(t, "drafts/inside", e.ID)
}
