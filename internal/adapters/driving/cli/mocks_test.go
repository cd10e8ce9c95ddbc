package cli

import (
	"context"

	"github.com/opencourse-labs/virta/internal/adapters/driven/storage/memory"
	"github.com/opencourse-labs/virta/internal/core/domain"
	"github.com/opencourse-labs/virta/internal/core/ports/driven"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer    domain.Answer
	matches   []domain.Match
	err       error
	lastQuery domain.Query
}

func (m *mockAnswerService) Ask(_ context.Context, query domain.Query) (domain.Answer, error) {
	m.lastQuery = query
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

// setupTestServices injects mock services and returns a cleanup function
// restoring the previous wiring.
func setupTestServices() func() {
	oldAnswer := answerService
	oldKnowledge := knowledgeService
	oldStore := knowledgeStore
	oldConfig := configStore

	answerService = &mockAnswerService{
		answer: domain.Answer{
			Text: "Use gpt-3.5-turbo-0125.",
			Links: []domain.Link{
				{URL: "https://discourse.example.edu/t/ga5/161120", Text: "GA5 Question 8 Clarification"},
			},
		},
		matches: []domain.Match{
			{
				Document: domain.Document{
					ID:         "161120-575854",
					Collection: domain.CollectionForum,
					Title:      "GA5 Question 8 Clarification",
					URL:        "https://discourse.example.edu/t/ga5/161120",
				},
				Score: 7,
			},
		},
	}
	knowledgeService = &mockKnowledgeService{}
	knowledgeStore = memory.NewKnowledgeStore()

	return func() {
		answerService = oldAnswer
		knowledgeService = oldKnowledge
		knowledgeStore = oldStore
		configStore = oldConfig
	}
}
