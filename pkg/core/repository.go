package core

import "context"

// Document is a raw content record as it exists on disk: parsed
// front-matter plus the markdown body, before schema validation.
type Document struct {
	ID       string
	Metadata Metadata
	Body     string
}

// Source defines the contract for loading raw content records.
// Adhering to this interface keeps the domain independent of the storage
// layout (filesystem today; anything that can yield documents tomorrow).
type Source interface {
	// Load returns all content documents in scan order.
	Load(ctx context.Context) ([]Document, error)

	// Get retrieves a single document by ID.
	Get(ctx context.Context, id string) (Document, error)

	// Initialize ensures the underlying storage is ready to be scanned.
	Initialize(ctx context.Context) error
}

// Watchable is implemented by sources that can observe content changes.
type Watchable interface {
	// Watch emits an event per content change matching the pattern until
	// ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
