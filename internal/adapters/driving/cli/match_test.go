package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCmd_Use(t *testing.T) {
	assert.Equal(t, "match [question]", matchCmd.Use)
}

func TestMatchCmd_HasLimitFlag(t *testing.T) {
	flag := matchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "5", flag.DefValue)
}

func TestMatchCmd_PrintsMatches(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"match", "gpt-3.5-turbo"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "GA5 Question 8 Clarification")
	assert.Contains(t, buf.String(), "score 7")
}

func TestMatchCmd_NoMatches(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	answerService.(*mockAnswerService).matches = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"match", "nothing matches this"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No matches found.")
}
