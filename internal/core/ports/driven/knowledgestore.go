package driven

import (
	"context"
	"time"

	"github.com/opencourse-labs/virta/internal/core/domain"
)

// KnowledgeStore persists forum posts and course content.
// Backed by SQLite; read concurrently by request handlers, written only
// by the ingest pipeline.
type KnowledgeStore interface {
	// Save stores or updates a document.
	Save(ctx context.Context, doc *domain.Document) error

	// SaveBatch stores or updates documents in a single transaction.
	SaveBatch(ctx context.Context, docs []domain.Document) error

	// Get retrieves a document by collection and ID.
	Get(ctx context.Context, collection domain.Collection, id string) (*domain.Document, error)

	// List returns all documents in a collection.
	List(ctx context.Context, collection domain.Collection) ([]domain.Document, error)

	// ListAll returns every stored document across collections.
	ListAll(ctx context.Context) ([]domain.Document, error)

	// Stats returns per-collection document counts and the most recent
	// document timestamp.
	Stats(ctx context.Context) (StoreStats, error)

	// Close releases the underlying database handle.
	Close() error
}

// StoreStats summarises the knowledge store contents.
type StoreStats struct {
	// Counts maps collection name to document count.
	Counts map[domain.Collection]int

	// LastUpdated is the newest document CreatedAt across collections.
	// Zero when the store is empty.
	LastUpdated time.Time
}
