package site

import (
	"log/slog"

	"github.com/quietpress/quill/pkg/core"
)

// options holds the internal configuration for site construction.
type options struct {
	configPath string
	drafts     bool
	liveReload bool
	baseURL    string
	outputDir  string
	source     core.Source
	logger     *slog.Logger
}

// Option defines a functional option for configuring a Site.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		configPath: DefaultConfigFile,
	}
}

// WithConfigFile sets the config file path.
func WithConfigFile(path string) Option {
	return func(o *options) {
		if path != "" {
			o.configPath = path
		}
	}
}

// WithDrafts includes draft articles in builds, for local preview.
func WithDrafts(drafts bool) Option {
	return func(o *options) {
		o.drafts = drafts
	}
}

// WithLiveReload injects the reload script into every rendered page.
func WithLiveReload(live bool) Option {
	return func(o *options) {
		o.liveReload = live
	}
}

// WithBaseURL overrides the configured base URL (e.g. for preview servers).
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithOutputDir overrides the configured output directory.
func WithOutputDir(dir string) Option {
	return func(o *options) {
		o.outputDir = dir
	}
}

// WithSource allows injecting a custom content source (e.g. a mock).
// If provided, the default filesystem source is skipped.
func WithSource(source core.Source) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithLogger sets the logger for the site and its components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
