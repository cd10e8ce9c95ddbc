package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencourse-labs/virta/internal/core/domain"
)

var (
	askImagePath string
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from the knowledge base",
	Long: `Answers a question using matched forum posts and course content as
context for the model, and prints the answer with source links.

An optional screenshot can be attached with --image; its text is
extracted and used alongside the question.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askImagePath, "image", "", "path to a screenshot to attach")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	query := domain.Query{Question: args[0]}
	if askImagePath != "" {
		image, err := os.ReadFile(askImagePath)
		if err != nil {
			return fmt.Errorf("reading image: %w", err)
		}
		query.Image = image
	}

	answer, err := answerService.Ask(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("answering failed: %w", err)
	}

	if askJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer domain.Answer) error {
	links := answer.Links
	if links == nil {
		links = []domain.Link{}
	}
	data, err := json.MarshalIndent(map[string]any{
		"answer": answer.Text,
		"links":  links,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer domain.Answer) error {
	cmd.Println(answer.Text)

	if len(answer.Links) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, link := range answer.Links {
			cmd.Printf("  - %s (%s)\n", link.Text, link.URL)
		}
	}

	if answer.Degraded {
		cmd.Println()
		cmd.Println("Note: the model was unreachable, this is a fallback answer.")
	}
	return nil
}
