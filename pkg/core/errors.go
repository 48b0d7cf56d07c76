package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrNotFound       = errors.New("article not found")
	ErrNoFrontMatter  = errors.New("document has no front-matter block")
	ErrUnclosedFences = errors.New("front-matter started but no closing delimiter found")
)

// ValidationError reports a schema violation in a single article.
// The build treats any ValidationError as fatal.
type ValidationError struct {
	ID     string // article id (content-relative path)
	Field  string // offending front-matter field, lowercased
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("article %q: %s", e.ID, e.Reason)
	}
	return fmt.Sprintf("article %q: field %q %s", e.ID, e.Field, e.Reason)
}

// ValidationErrors aggregates failures across the whole collection so a
// single check run can report every broken article at once.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return "no validation errors"
	case 1:
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", e[0].Error(), len(e)-1)
}
