package mcp

import (
	"context"

	"github.com/opencourse-labs/virta/internal/core/domain"
	"github.com/opencourse-labs/virta/internal/core/ports/driven"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer  domain.Answer
	matches []domain.Match
	err     error
}

func (m *mockAnswerService) Ask(_ context.Context, _ domain.Query) (domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockAnswerService) Match(_ context.Context, _ string, _ int) ([]domain.Match, error) {
	return m.matches, m.err
}

// mockKnowledgeService is a mock implementation of driving.KnowledgeService.
type mockKnowledgeService struct {
	stats driven.StoreStats
	err   error
}

func (m *mockKnowledgeService) Stats(_ context.Context) (driven.StoreStats, error) {
	return m.stats, m.err
}
