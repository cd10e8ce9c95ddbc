package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencourse-labs/virta/internal/core/domain"
)

var (
	matchLimit int
	matchJSON  bool
)

var matchCmd = &cobra.Command{
	Use:   "match [question]",
	Short: "Show which documents a question would retrieve",
	Long: `Ranks the knowledge base against a question and prints the matching
documents without calling the model. Useful for tuning ingested content.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().IntVarP(&matchLimit, "limit", "n", 5, "maximum number of matches")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output matches as JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	matches, err := answerService.Match(cmd.Context(), args[0], matchLimit)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if matchJSON {
		data, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal matches: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputMatchTable(cmd, matches)
}

func outputMatchTable(cmd *cobra.Command, matches []domain.Match) error {
	if len(matches) == 0 {
		cmd.Println("No matches found.")
		return nil
	}

	cmd.Println("Matches:")
	cmd.Println()
	for i := range matches {
		title := matches[i].Document.Title
		if title == "" {
			title = matches[i].Document.ID
		}
		cmd.Printf("[%d] %s (%s, score %d)\n", i+1, title, matches[i].Document.Collection, matches[i].Score)
		if matches[i].Document.URL != "" {
			cmd.Printf("    %s\n", matches[i].Document.URL)
		}
	}
	return nil
}
