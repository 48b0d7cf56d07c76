package build

import "github.com/aretw0/introspection"

// BuilderState is the introspection snapshot of a Builder.
type BuilderState struct {
	OutputDir     string `json:"output_dir"`
	StaticDir     string `json:"static_dir,omitempty"`
	IncludeDrafts bool   `json:"include_drafts"`
	Groups        int    `json:"groups"`
}

// State implements introspection.Introspectable.
func (b *Builder) State() any {
	return BuilderState{
		OutputDir:     b.opts.OutputDir,
		StaticDir:     b.opts.StaticDir,
		IncludeDrafts: b.opts.IncludeDrafts,
		Groups:        len(b.opts.Groups),
	}
}

// ComponentType implements introspection.Component.
func (b *Builder) ComponentType() string {
	return "site-builder"
}

var _ introspection.Introspectable = (*Builder)(nil)
