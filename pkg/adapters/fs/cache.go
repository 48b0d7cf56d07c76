package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/quietpress/quill/pkg/core"
)

// indexEntry is the cached parse result for one content file.
// Metadata is stored normalized (timestamps as RFC3339 strings) so a JSON
// round-trip hands the schema decoder values it already accepts.
type indexEntry struct {
	ID           string        `json:"id"`
	Metadata     core.Metadata `json:"metadata,omitempty"`
	Body         string        `json:"body,omitempty"`
	LastModified time.Time     `json:"lastModified"`
}

// index is the persistent cache state.
type index struct {
	Version int                    `json:"version"`
	Entries map[string]*indexEntry `json:"entries"` // keyed by content-relative path
	dirty   bool
	mu      sync.RWMutex
}

// scanCache persists parse results between runs so unchanged files are not
// re-parsed on every build. It lives at {systemDir}/index.json.
type scanCache struct {
	Path  string
	index *index
}

func newScanCache(systemDir string) *scanCache {
	return &scanCache{
		Path: filepath.Join(systemDir, "index.json"),
		index: &index{
			Version: 1,
			Entries: make(map[string]*indexEntry),
		},
	}
}

// Load reads the cache from disk. A missing or corrupted file yields an
// empty index rather than an error; the cache self-heals on the next Save.
func (c *scanCache) Load() error {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	data, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	if err := json.Unmarshal(data, c.index); err != nil {
		c.index.Entries = make(map[string]*indexEntry)
		return nil
	}

	c.index.dirty = false
	return nil
}

// Save persists the cache if it changed since the last Load/Save.
func (c *scanCache) Save() error {
	c.index.mu.RLock()
	if !c.index.dirty {
		c.index.mu.RUnlock()
		return nil
	}
	data, err := json.MarshalIndent(c.index, "", "  ")
	c.index.mu.RUnlock()

	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return err
	}

	if err := WriteFileAtomic(c.Path, data, 0644); err != nil {
		return err
	}

	c.index.mu.Lock()
	c.index.dirty = false
	c.index.mu.Unlock()

	return nil
}

// Get returns the entry for relPath if it is fresh against currentMtime.
func (c *scanCache) Get(relPath string, currentMtime time.Time) (*indexEntry, bool) {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()

	entry, ok := c.index.Entries[relPath]
	if !ok {
		return nil, false
	}
	if !entry.LastModified.Equal(currentMtime) {
		return nil, false
	}
	return entry, true
}

// Set stores an entry, normalizing metadata for the JSON round-trip.
func (c *scanCache) Set(relPath string, entry *indexEntry) {
	entry.Metadata = normalizeMetadata(entry.Metadata)

	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	c.index.Entries[relPath] = entry
	c.index.dirty = true
}

// Prune removes entries whose path is not in the keep set.
func (c *scanCache) Prune(keep map[string]bool) {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	for path := range c.index.Entries {
		if !keep[path] {
			delete(c.index.Entries, path)
			c.index.dirty = true
		}
	}
}

// Len returns the number of cached entries.
func (c *scanCache) Len() int {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()
	return len(c.index.Entries)
}

// normalizeMetadata rewrites values that do not survive a JSON round-trip.
// Timestamps become RFC3339 strings, which the schema decoder accepts, and
// interface-keyed maps become string-keyed.
func normalizeMetadata(meta core.Metadata) core.Metadata {
	if meta == nil {
		return nil
	}
	out := make(core.Metadata, len(meta))
	for k, v := range meta {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case map[string]any:
		return map[string]any(normalizeMetadata(v))
	case map[any]any:
		converted := make(core.Metadata, len(v))
		for key, inner := range v {
			converted[fmt.Sprint(key)] = inner
		}
		return map[string]any(normalizeMetadata(converted))
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = normalizeValue(v[i])
		}
		return out
	case interface{ String() string }:
		// toml.LocalDate and friends; their String form is parseable.
		return v.String()
	default:
		return v
	}
}
