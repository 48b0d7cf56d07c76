package site

import (
	"context"
	"log/slog"

	"github.com/quietpress/quill/pkg/adapters/fs"
	"github.com/quietpress/quill/pkg/build"
	"github.com/quietpress/quill/pkg/core"
	"github.com/quietpress/quill/pkg/feed"
	"github.com/quietpress/quill/pkg/render"
)

// Site bundles the configured components of one project: the content
// source, the domain service and the builder.
type Site struct {
	Config  Config
	Source  core.Source
	Service *core.Service
	Builder *build.Builder
	Logger  *slog.Logger
}

// New loads the configuration and wires up a Site.
//
//	s, err := site.New(site.WithDrafts(true))
func New(opts ...Option) (*Site, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	cfg, err := LoadConfig(o.configPath, o.logger)
	if err != nil {
		return nil, err
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.outputDir != "" {
		cfg.OutputDir = o.outputDir
	}

	source := o.source
	if source == nil {
		source = fs.NewSource(fs.Config{
			Dir:       cfg.ContentDir,
			Include:   cfg.Include,
			Exclude:   cfg.Exclude,
			SystemDir: cfg.SystemDir,
			Logger:    o.logger,
		})
	}

	builder, err := build.New(source, build.Options{
		OutputDir: cfg.OutputDir,
		StaticDir: cfg.StaticDir,
		Site: render.SiteInfo{
			Title:       cfg.Title,
			Description: cfg.Description,
			BaseURL:     cfg.BaseURL,
			Author:      cfg.Author,
			Social:      cfg.Social,
			RecentCount: cfg.RecentCount,
			Mermaid:     cfg.Markdown.Mermaid,
			KaTeX:       cfg.Markdown.KaTeX,
			LiveReload:  o.liveReload,
		},
		Groups: cfg.Groups,
		Feed: feed.Options{
			Title:       cfg.Title,
			Description: cfg.Description,
			BaseURL:     cfg.BaseURL,
			Language:    cfg.Language,
			Limit:       cfg.Feed.Limit,
		},
		DisableFeed:   !cfg.FeedEnabled(),
		IncludeDrafts: o.drafts,
		Logger:        o.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Site{
		Config:  cfg,
		Source:  source,
		Service: core.NewService(source),
		Builder: builder,
		Logger:  o.logger,
	}, nil
}

// Build verifies the content directory and runs one full build pass.
func (s *Site) Build(ctx context.Context) (*build.Stats, error) {
	if err := s.Source.Initialize(ctx); err != nil {
		return nil, err
	}
	return s.Builder.Build(ctx)
}

// Check validates the content without writing output.
func (s *Site) Check(ctx context.Context) (core.Collection, []string, error) {
	if err := s.Source.Initialize(ctx); err != nil {
		return nil, nil, err
	}
	return s.Builder.Check(ctx)
}

// Watch observes content changes if the source supports it.
func (s *Site) Watch(ctx context.Context) (<-chan core.Event, error) {
	return s.Service.Watch(ctx, "")
}
