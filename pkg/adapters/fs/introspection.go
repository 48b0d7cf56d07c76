package fs

import (
	"github.com/aretw0/introspection"
)

// SourceState exposes internal state for observability.
type SourceState struct {
	Dir           string   `json:"dir"`
	Include       []string `json:"include"`
	Exclude       []string `json:"exclude,omitempty"`
	CacheEnabled  bool     `json:"cache_enabled"`
	CacheSize     int      `json:"cache_size"`
	WatcherActive bool     `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Source) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := 0
	if s.cache != nil {
		size = s.cache.Len()
	}

	return SourceState{
		Dir:           s.Dir,
		Include:       s.config.Include,
		Exclude:       s.config.Exclude,
		CacheEnabled:  s.cache != nil,
		CacheSize:     size,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Source) ComponentType() string {
	return "fs-source"
}

var _ introspection.Introspectable = (*Source)(nil)
var _ introspection.Component = (*Source)(nil)
