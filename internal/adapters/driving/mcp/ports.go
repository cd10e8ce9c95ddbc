package mcp

import (
	"github.com/opencourse-labs/virta/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answer provides question answering and document matching.
	Answer driving.AnswerService

	// Knowledge exposes knowledge base statistics.
	Knowledge driving.KnowledgeService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	// Knowledge is optional; the summary resource degrades without it.
	return nil
}
