// Package memory provides in-memory store implementations used as test
// doubles across the service and adapter tests.
package memory

import (
	"context"
	"sync"

	"github.com/opencourse-labs/virta/internal/core/domain"
	"github.com/opencourse-labs/virta/internal/core/ports/driven"
)

// Ensure KnowledgeStore implements the interface.
var _ driven.KnowledgeStore = (*KnowledgeStore)(nil)

// key identifies a document within the store.
type key struct {
	collection domain.Collection
	id         string
}

// KnowledgeStore is an in-memory implementation of driven.KnowledgeStore.
type KnowledgeStore struct {
	mu   sync.RWMutex
	docs map[key]domain.Document
}

// NewKnowledgeStore creates a new in-memory knowledge store.
func NewKnowledgeStore() *KnowledgeStore {
	return &KnowledgeStore{
		docs: make(map[key]domain.Document),
	}
}

// Save stores or updates a document.
func (s *KnowledgeStore) Save(_ context.Context, doc *domain.Document) error {
	if doc.ID == "" || !doc.Collection.Valid() || doc.Content == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key{doc.Collection, doc.ID}] = *doc
	return nil
}

// SaveBatch stores or updates documents.
func (s *KnowledgeStore) SaveBatch(ctx context.Context, docs []domain.Document) error {
	for i := range docs {
		if err := s.Save(ctx, &docs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a document by collection and ID.
func (s *KnowledgeStore) Get(_ context.Context, collection domain.Collection, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[key{collection, id}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// List returns all documents in a collection.
func (s *KnowledgeStore) List(_ context.Context, collection domain.Collection) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0)
	for k, doc := range s.docs {
		if k.collection == collection {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// ListAll returns every stored document.
func (s *KnowledgeStore) ListAll(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

// Stats returns per-collection counts and the newest document timestamp.
func (s *KnowledgeStore) Stats(_ context.Context) (driven.StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := driven.StoreStats{Counts: make(map[domain.Collection]int)}
	for k, doc := range s.docs {
		stats.Counts[k.collection]++
		if doc.CreatedAt.After(stats.LastUpdated) {
			stats.LastUpdated = doc.CreatedAt
		}
	}
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (s *KnowledgeStore) Close() error {
	return nil
}
