// Package build runs the single-pass site build: load and validate the
// content, render every route, emit the feed, sitemap and search index,
// and copy static assets into the output directory.
package build

import (
	"context"
	"embed"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quietpress/quill/pkg/adapters/fs"
	"github.com/quietpress/quill/pkg/core"
	"github.com/quietpress/quill/pkg/feed"
	"github.com/quietpress/quill/pkg/render"
	"github.com/quietpress/quill/pkg/search"
)

//go:embed assets
var defaultAssets embed.FS

// Options configures a Builder.
type Options struct {
	// OutputDir is where the site is written. Created if missing.
	OutputDir string
	// StaticDir is copied verbatim into OutputDir/static. Optional.
	StaticDir string
	// Site carries the presentation-level settings.
	Site render.SiteInfo
	// Groups is the taxonomy used for the grouped article listing.
	Groups []core.Group
	// Feed configures RSS generation. BaseURL falls back to Site.BaseURL.
	Feed feed.Options
	// DisableFeed skips rss.xml entirely.
	DisableFeed bool
	// IncludeDrafts promotes drafts to published, for local preview builds.
	IncludeDrafts bool
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Stats summarizes a finished build.
type Stats struct {
	Articles int
	Pages    int
	Duration time.Duration
}

// Builder renders the whole site from a content source.
type Builder struct {
	svc      *core.Service
	renderer *render.Renderer
	opts     Options
	logger   *slog.Logger
}

// New wires a Builder over the given content source.
func New(source core.Source, opts Options) (*Builder, error) {
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.Feed.BaseURL == "" {
		opts.Feed.BaseURL = opts.Site.BaseURL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	renderer, err := render.New(opts.Site)
	if err != nil {
		return nil, err
	}

	return &Builder{
		svc:      core.NewService(source),
		renderer: renderer,
		opts:     opts,
		logger:   opts.Logger,
	}, nil
}

// Build runs one complete pass. Validation failures abort before anything
// is written, so a broken source never clobbers a good output tree.
func (b *Builder) Build(ctx context.Context) (*Stats, error) {
	start := time.Now()

	articles, err := b.svc.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if b.opts.IncludeDrafts {
		for i := range articles {
			articles[i].Draft = false
		}
	}
	published := articles.Published()
	b.logger.Debug("content loaded", "articles", len(articles), "published", len(published))

	stats := &Stats{Articles: len(published)}

	if err := os.MkdirAll(b.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := b.renderPages(published, stats); err != nil {
		return nil, err
	}
	if err := b.writeFeeds(published); err != nil {
		return nil, err
	}
	if err := b.copyStatic(); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	b.logger.Info("build finished",
		"articles", stats.Articles,
		"pages", stats.Pages,
		"duration", stats.Duration.Round(time.Millisecond))
	return stats, nil
}

// Check loads and validates the content without writing anything. It returns
// the collection plus any dangling group references, which are warnings
// rather than failures.
func (b *Builder) Check(ctx context.Context) (core.Collection, []string, error) {
	articles, err := b.svc.LoadAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return articles, articles.UnknownGroups(b.opts.Groups), nil
}

func (b *Builder) renderPages(published core.Collection, stats *Stats) error {
	index, err := b.renderer.Index(published)
	if err != nil {
		return err
	}
	if err := b.writePage("/", index, stats); err != nil {
		return err
	}

	grouped := published.ByGroup(b.opts.Groups)
	listing, err := b.renderer.Articles(published, grouped)
	if err != nil {
		return err
	}
	if err := b.writePage("/articles/", listing, stats); err != nil {
		return err
	}

	for _, a := range published {
		page, err := b.renderer.Article(a)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", a.ID, err)
		}
		if err := b.writePage(a.Path(), page, stats); err != nil {
			return err
		}
	}

	about, err := b.renderer.About()
	if err != nil {
		return err
	}
	if err := b.writePage("/about/", about, stats); err != nil {
		return err
	}

	notFound, err := b.renderer.NotFound()
	if err != nil {
		return err
	}
	// The 404 page is a flat file so web servers can pick it up directly.
	if err := b.writeFile("404.html", notFound, stats); err != nil {
		return err
	}
	return nil
}

func (b *Builder) writeFeeds(published core.Collection) error {
	if !b.opts.DisableFeed {
		rss, err := feed.RSS(published, b.opts.Feed)
		if err != nil {
			return err
		}
		if err := b.writeFile("rss.xml", rss, nil); err != nil {
			return err
		}
	}

	sitemap, err := feed.Sitemap(published, b.opts.Site.BaseURL)
	if err != nil {
		return err
	}
	if err := b.writeFile("sitemap.xml", sitemap, nil); err != nil {
		return err
	}

	idx, err := search.Index(published)
	if err != nil {
		return err
	}
	return b.writeFile("search-index.json", idx, nil)
}

// writePage writes rendered HTML under a pretty URL: /<route>/index.html.
func (b *Builder) writePage(route string, data []byte, stats *Stats) error {
	rel := filepath.Join(filepath.FromSlash(strings.Trim(route, "/")), "index.html")
	return b.writeFile(rel, data, stats)
}

func (b *Builder) writeFile(rel string, data []byte, stats *Stats) error {
	path := filepath.Join(b.opts.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := fs.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if stats != nil {
		stats.Pages++
	}
	b.logger.Debug("wrote", "path", rel, "bytes", len(data))
	return nil
}

// copyStatic mirrors the configured static directory into OutputDir/static,
// then fills in the bundled defaults for anything the user did not override.
func (b *Builder) copyStatic() error {
	target := filepath.Join(b.opts.OutputDir, "static")

	if b.opts.StaticDir != "" {
		if _, err := os.Stat(b.opts.StaticDir); err == nil {
			if err := copyTree(b.opts.StaticDir, target); err != nil {
				return fmt.Errorf("failed to copy static assets: %w", err)
			}
		}
	}

	return iofs.WalkDir(defaultAssets, "assets", func(path string, d iofs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel := strings.TrimPrefix(path, "assets/")
		dst := filepath.Join(target, filepath.FromSlash(rel))
		if _, err := os.Stat(dst); err == nil {
			return nil // user asset wins
		}
		data, err := defaultAssets.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return fs.WriteFileAtomic(dst, data, 0644)
	})
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		return fs.WriteFileAtomic(target, data, 0644)
	})
}
