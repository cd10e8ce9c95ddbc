package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencourse-labs/virta/internal/ingest"
	"github.com/opencourse-labs/virta/internal/logger"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Load scraped exports into the knowledge base",
	Long: `Parses scraper export files and upserts their documents into the
knowledge base. Forum exports (objects with a topic_id) land in the
forum collection, everything else in the course collection.

Re-ingesting an export updates existing documents in place.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if knowledgeStore == nil {
		return errors.New("knowledge store not configured")
	}

	total := 0
	for _, path := range args {
		docs, err := ingest.LoadFile(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		if len(docs) == 0 {
			logger.Warn("No documents in %s", path)
			continue
		}

		if err := knowledgeStore.SaveBatch(cmd.Context(), docs); err != nil {
			return fmt.Errorf("saving documents from %s: %w", path, err)
		}

		cmd.Printf("Ingested %d documents from %s (%s)\n", len(docs), path, docs[0].Collection)
		total += len(docs)
	}

	cmd.Printf("Done: %d documents.\n", total)
	return nil
}
