package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencourse-labs/virta/internal/core/domain"
)

func TestBuildAnswer_LinksFollowRankOrder(t *testing.T) {
	used := []domain.Match{
		makeMatch("1", "GA5 Question 8 Clarification", "content", "https://x/1", 9),
		makeMatch("2", "Project deadlines", "content", "https://x/2", 5),
	}

	answer := BuildAnswer("  Use gpt-3.5-turbo-0125.  ", used)

	assert.Equal(t, "Use gpt-3.5-turbo-0125.", answer.Text)
	assert.False(t, answer.Degraded)
	require.Len(t, answer.Links, 2)
	assert.Equal(t, "https://x/1", answer.Links[0].URL)
	assert.Equal(t, "GA5 Question 8 Clarification", answer.Links[0].Text)
	assert.Equal(t, "https://x/2", answer.Links[1].URL)
}

func TestBuildAnswer_DeduplicatesByURL(t *testing.T) {
	used := []domain.Match{
		makeMatch("1", "First post", "c", "https://x/same", 9),
		makeMatch("2", "Second post", "c", "https://x/same", 5),
		makeMatch("3", "Third", "c", "https://x/3", 2),
	}

	answer := BuildAnswer("text", used)

	require.Len(t, answer.Links, 2)
	assert.Equal(t, "https://x/same", answer.Links[0].URL)
	assert.Equal(t, "First post", answer.Links[0].Text) // highest rank wins
	assert.Equal(t, "https://x/3", answer.Links[1].URL)
}

func TestBuildAnswer_SkipsEmptyURLs(t *testing.T) {
	used := []domain.Match{
		makeMatch("1", "No URL", "c", "", 9),
	}

	answer := BuildAnswer("text", used)
	assert.Empty(t, answer.Links)
}

func TestBuildAnswer_LabelFallsBackToFirstSentence(t *testing.T) {
	used := []domain.Match{
		makeMatch("1", "", "Podman is recommended for this course. Docker works too.", "https://x/1", 3),
	}

	answer := BuildAnswer("text", used)
	require.Len(t, answer.Links, 1)
	assert.Equal(t, "Podman is recommended for this course", answer.Links[0].Text)
}

func TestBuildAnswer_NoMatches(t *testing.T) {
	answer := BuildAnswer("Plain answer with no context.", nil)

	assert.Equal(t, "Plain answer with no context.", answer.Text)
	assert.Empty(t, answer.Links)
	assert.NotNil(t, answer.Links)
}

func TestFallbackAnswer(t *testing.T) {
	answer := FallbackAnswer()

	assert.NotEmpty(t, answer.Text)
	assert.Empty(t, answer.Links)
	assert.NotNil(t, answer.Links)
	assert.True(t, answer.Degraded)
}
