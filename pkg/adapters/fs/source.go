package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/quietpress/quill/pkg/core"
)

// Source implements core.Source over a content directory of markdown files
// with front-matter.
type Source struct {
	Dir    string
	config Config
	codecs []Codec
	cache  *scanCache

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the filesystem source.
type Config struct {
	Dir          string       // content root
	Include      []string     // doublestar globs relative to Dir; default "**/*.md"
	Exclude      []string     // doublestar globs; matched paths are skipped
	SystemDir    string       // scan cache location (e.g. ".quill"); empty disables caching
	Logger       *slog.Logger
	ErrorHandler func(error) // optional, receives async watch errors
}

// NewSource creates a new filesystem-backed content source.
func NewSource(config Config) *Source {
	if len(config.Include) == 0 {
		config.Include = []string{"**/*.md"}
	}

	var cache *scanCache
	if config.SystemDir != "" {
		cache = newScanCache(config.SystemDir)
	}

	return &Source{
		Dir:    config.Dir,
		config: config,
		codecs: DefaultCodecs(),
		cache:  cache,
	}
}

// Initialize verifies the content directory exists. A site without its
// content tree is a configuration error, never something to auto-create.
func (s *Source) Initialize(ctx context.Context) error {
	info, err := os.Stat(s.Dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("content directory does not exist: %s", s.Dir)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("content path is not a directory: %s", s.Dir)
	}
	return nil
}

// matches applies the include/exclude globs to a content-relative path.
func (s *Source) matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range s.config.Exclude {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return false
		}
	}
	for _, pattern := range s.config.Include {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}

// idFor maps a content-relative path to a document ID (slug).
func idFor(relPath string) string {
	relPath = filepath.ToSlash(relPath)
	return strings.TrimSuffix(relPath, filepath.Ext(relPath))
}

// Load scans the content tree in lexical walk order.
//
// Strategy:
//  1. Load the scan cache (mtime index) if enabled.
//  2. Walk the tree, skipping dot-directories and non-matching paths.
//  3. Cache hit (same mtime): reuse the parsed record.
//  4. Cache miss: parse front-matter + body, update the cache.
//  5. Prune stale entries and save the cache back.
//
// Parse failures are fatal: a malformed document must fail the build, not
// silently drop an article.
func (s *Source) Load(ctx context.Context) ([]core.Document, error) {
	if s.cache != nil {
		if err := s.cache.Load(); err != nil && s.config.Logger != nil {
			s.config.Logger.Warn("scan cache unreadable, rebuilding", "error", err)
		}
	}

	var docs []core.Document
	seen := make(map[string]bool)

	err := filepath.WalkDir(s.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.Dir {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(s.Dir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if !s.matches(relPath) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		mtime := info.ModTime()
		seen[relPath] = true

		if s.cache != nil {
			if entry, hit := s.cache.Get(relPath, mtime); hit {
				docs = append(docs, core.Document{
					ID:       entry.ID,
					Metadata: entry.Metadata,
					Body:     entry.Body,
				})
				return nil
			}
		}

		doc, err := s.read(path, relPath)
		if err != nil {
			return fmt.Errorf("parse %s: %w", relPath, err)
		}

		if s.cache != nil {
			s.cache.Set(relPath, &indexEntry{
				ID:           doc.ID,
				Metadata:     doc.Metadata,
				Body:         doc.Body,
				LastModified: mtime,
			})
		}

		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Prune(seen)
		if err := s.cache.Save(); err != nil && s.config.Logger != nil {
			s.config.Logger.Warn("failed to save scan cache", "error", err)
		}
	}

	return docs, nil
}

// Get retrieves a single document by ID.
func (s *Source) Get(ctx context.Context, id string) (core.Document, error) {
	relPath := id + ".md"
	if !s.matches(relPath) {
		return core.Document{}, core.ErrNotFound
	}

	doc, err := s.read(filepath.Join(s.Dir, relPath), relPath)
	if os.IsNotExist(err) {
		return core.Document{}, core.ErrNotFound
	}
	if err != nil {
		return core.Document{}, err
	}
	return doc, nil
}

// read parses one content file into a raw document.
func (s *Source) read(path, relPath string) (core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Document{}, err
	}

	meta, body, err := parseDocument(data, s.codecs)
	if err != nil {
		return core.Document{}, err
	}

	return core.Document{
		ID:       idFor(relPath),
		Metadata: meta,
		Body:     body,
	}, nil
}

// Scaffold writes a new content file with the given front-matter and body,
// refusing to overwrite an existing document.
func (s *Source) Scaffold(id string, meta core.Metadata, body string) (string, error) {
	relPath := filepath.FromSlash(id) + ".md"
	fullPath := filepath.Join(s.Dir, relPath)

	if _, err := os.Stat(fullPath); err == nil {
		return "", fmt.Errorf("content file already exists: %s", relPath)
	}

	data, err := (&YAMLCodec{}).Format(meta, body)
	if err != nil {
		return "", fmt.Errorf("failed to render front-matter: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}
	if err := WriteFileAtomic(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write content file: %w", err)
	}

	return fullPath, nil
}

func (s *Source) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
