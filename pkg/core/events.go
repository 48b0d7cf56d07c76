package core

// EventType represents the kind of change observed in the content tree.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a content document. Watching sources emit
// events; the serve loop consumes them to trigger rebuilds.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}
