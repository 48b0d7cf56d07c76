// Package quill is the public facade of the quill static site generator.
//
// It connects the content domain (schema validation, listing, taxonomy)
// with the infrastructure adapters (filesystem source, renderer, feeds)
// behind a small surface. The CLI in cmd/quill is a thin layer over this
// package; programmatic consumers get the same behavior.
//
// Usage:
//
//	stats, err := quill.Build(ctx,
//		quill.WithConfigFile("quill.yaml"),
//		quill.WithDrafts(true),
//	)
package quill

import (
	"context"

	"github.com/quietpress/quill/pkg/build"
	"github.com/quietpress/quill/pkg/core"
	"github.com/quietpress/quill/pkg/site"
)

// Version exposes the version of the library.
const Version = "0.3.0"

// --- Types ---

// Article is a public alias for the validated content record.
type Article = core.Article

// Collection is a public alias for an ordered set of articles.
type Collection = core.Collection

// Group is a public alias for a taxonomy entry.
type Group = core.Group

// Stats is a public alias for the build summary.
type Stats = build.Stats

// --- Configuration ---

// Option defines a functional option for configuring a site.
type Option = site.Option

// WithConfigFile sets the config file path.
func WithConfigFile(path string) Option {
	return site.WithConfigFile(path)
}

// WithDrafts includes draft articles in builds.
func WithDrafts(drafts bool) Option {
	return site.WithDrafts(drafts)
}

// WithBaseURL overrides the configured base URL.
func WithBaseURL(url string) Option {
	return site.WithBaseURL(url)
}

// WithOutputDir overrides the configured output directory.
func WithOutputDir(dir string) Option {
	return site.WithOutputDir(dir)
}

// WithSource allows injecting a custom content source.
func WithSource(source core.Source) Option {
	return site.WithSource(source)
}

// --- Operations ---

// Build runs one full site build.
func Build(ctx context.Context, opts ...Option) (*Stats, error) {
	s, err := site.New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Build(ctx)
}

// Check validates the content without writing output. It returns the
// validated articles and any group references missing from configuration.
func Check(ctx context.Context, opts ...Option) (Collection, []string, error) {
	s, err := site.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	return s.Check(ctx)
}
