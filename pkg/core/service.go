package core

import (
	"context"
	"errors"
	"sync"
)

// Service handles the content-side business logic: loading documents from a
// source, running them through the schema, and answering collection queries.
type Service struct {
	source Source
	mu     sync.RWMutex
}

// NewService creates a new Service over the given content source.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// LoadAll reads every content document and decodes it into a validated
// Article. Validation is fail-fast at the collection level: if any document
// is invalid the whole load fails, but all failures are gathered first so
// one run reports every broken article.
func (s *Service) LoadAll(ctx context.Context) (Collection, error) {
	docs, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	articles := make(Collection, 0, len(docs))
	var verrs ValidationErrors
	for _, doc := range docs {
		a, err := DecodeArticle(doc.ID, doc.Metadata, doc.Body)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verrs = append(verrs, verr)
				continue
			}
			return nil, err
		}
		articles = append(articles, a)
	}

	if len(verrs) > 0 {
		return nil, verrs
	}
	return articles, nil
}

// GetArticle loads and decodes a single article.
func (s *Service) GetArticle(ctx context.Context, id string) (Article, error) {
	doc, err := s.source.Get(ctx, id)
	if err != nil {
		return Article{}, err
	}
	return DecodeArticle(doc.ID, doc.Metadata, doc.Body)
}

// Watch observes content changes if the source supports it.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.source.(Watchable)
	if !ok {
		return nil, errors.New("source does not support watching")
	}
	return w.Watch(ctx, pattern)
}
