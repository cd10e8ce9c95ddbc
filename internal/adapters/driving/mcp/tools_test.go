package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencourse-labs/virta/internal/core/domain"
	"github.com/opencourse-labs/virta/internal/core/ports/driven"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with links", func(t *testing.T) {
		mockAnswer := &mockAnswerService{
			answer: domain.Answer{
				Text: "Use gpt-3.5-turbo-0125 as the question specifies.",
				Links: []domain.Link{
					{URL: "https://discourse.example.edu/t/ga5/161120", Text: "GA5 Question 8 Clarification"},
				},
			},
		}

		ports := &Ports{Answer: mockAnswer}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "Which model should I use?"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Use gpt-3.5-turbo-0125 as the question specifies.", output.Answer)
		require.Len(t, output.Links, 1)
		assert.Equal(t, "https://discourse.example.edu/t/ga5/161120", output.Links[0].URL)
		assert.False(t, output.Degraded)
	})

	t.Run("surfaces degraded flag", func(t *testing.T) {
		mockAnswer := &mockAnswerService{
			answer: domain.Answer{Text: "fallback", Degraded: true},
		}

		ports := &Ports{Answer: mockAnswer}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "anything"})

		require.NoError(t, err)
		assert.True(t, output.Degraded)
	})

	t.Run("returns error on invalid input", func(t *testing.T) {
		mockAnswer := &mockAnswerService{err: domain.ErrInvalidInput}

		ports := &Ports{Answer: mockAnswer}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{})
		require.Error(t, err)
	})
}

func TestServer_handleMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked matches", func(t *testing.T) {
		mockAnswer := &mockAnswerService{
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

		ports := &Ports{Answer: mockAnswer}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := MatchInput{Question: "gpt-3.5-turbo", Limit: 5}
		_, output, err := server.handleMatch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Matches, 1)
		assert.Equal(t, "161120-575854", output.Matches[0].DocumentID)
		assert.Equal(t, "forum", output.Matches[0].Collection)
		assert.Equal(t, 7, output.Matches[0].Score)
	})

	t.Run("returns error when store is unavailable", func(t *testing.T) {
		mockAnswer := &mockAnswerService{err: errors.New("store offline")}

		ports := &Ports{Answer: mockAnswer}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleMatch(ctx, nil, MatchInput{Question: "q"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store offline")
	})
}

func TestServer_handleSummaryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stats as JSON", func(t *testing.T) {
		mockKnowledge := &mockKnowledgeService{
			stats: driven.StoreStats{
				Counts: map[domain.Collection]int{
					domain.CollectionForum:  10,
					domain.CollectionCourse: 3,
				},
				LastUpdated: time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC),
			},
		}

		ports := &Ports{Answer: &mockAnswerService{}, Knowledge: mockKnowledge}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := newReadResourceRequest(uriScheme + "summary")
		result, err := server.handleSummaryResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "\"documents\": 13")
		assert.Contains(t, result.Contents[0].Text, "2025-04-15T10:00:00Z")
	})

	t.Run("empty object without knowledge service", func(t *testing.T) {
		ports := &Ports{Answer: &mockAnswerService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := newReadResourceRequest(uriScheme + "summary")
		result, err := server.handleSummaryResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "{}", result.Contents[0].Text)
	})

	t.Run("propagates stats errors", func(t *testing.T) {
		mockKnowledge := &mockKnowledgeService{err: domain.ErrStoreUnavailable}

		ports := &Ports{Answer: &mockAnswerService{}, Knowledge: mockKnowledge}
		server, err := NewServer(ports)
		require.NoError(t, err)

		req := newReadResourceRequest(uriScheme + "summary")
		_, err = server.handleSummaryResource(ctx, req)
		require.Error(t, err)
	})
}
