package driving

import (
	"context"

	"github.com/opencourse-labs/virta/internal/core/domain"
	"github.com/opencourse-labs/virta/internal/core/ports/driven"
)

// AnswerService answers student questions against the knowledge store.
type AnswerService interface {
	// Ask runs the full pipeline: retrieval, prompt assembly, the
	// upstream model call, and answer formatting. It never returns an
	// error for pipeline failures - those degrade into a still-valid
	// Answer. Only invalid input (empty question AND no image) is an
	// error.
	Ask(ctx context.Context, query domain.Query) (domain.Answer, error)

	// Match returns the ranked documents a question would retrieve,
	// without calling the upstream model.
	Match(ctx context.Context, question string, limit int) ([]domain.Match, error)
}

// KnowledgeService exposes read access to the knowledge store for status
// surfaces (summary endpoint, MCP resources).
type KnowledgeService interface {
	// Stats returns per-collection counts and the last ingest time.
	Stats(ctx context.Context) (driven.StoreStats, error)
}
