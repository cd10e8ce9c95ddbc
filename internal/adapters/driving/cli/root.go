// Package cli implements the virta command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/opencourse-labs/virta/internal/adapters/driven/config/file"
	"github.com/opencourse-labs/virta/internal/adapters/driven/llm/openai"
	"github.com/opencourse-labs/virta/internal/adapters/driven/ocr/vision"
	"github.com/opencourse-labs/virta/internal/adapters/driven/storage/sqlite"
	"github.com/opencourse-labs/virta/internal/core/ports/driven"
	"github.com/opencourse-labs/virta/internal/core/ports/driving"
	"github.com/opencourse-labs/virta/internal/core/services"
	"github.com/opencourse-labs/virta/internal/logger"
)

// version is the CLI version, overridable at build time with -ldflags.
var version = "0.1.0"

var (
	verbose   bool
	dataDir   string
	configDir string
)

// Services are package-level so commands can share them and tests can
// inject mocks.
var (
	configStore      driven.ConfigStore
	knowledgeStore   driven.KnowledgeStore
	answerService    driving.AnswerService
	knowledgeService driving.KnowledgeService
)

var rootCmd = &cobra.Command{
	Use:   "virta",
	Short: "Virtual teaching assistant for course questions",
	Long: `Virta answers student questions using a local knowledge base of
forum posts and course content, citing the sources it drew on.

Ingest scraped forum and course exports, then ask questions directly or
serve the answering API over HTTP.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "knowledge base directory (default ~/.virta/data)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.virta)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the adapters and core services. It is a no-op when
// services are already set, which is how tests inject mocks.
func initServices() error {
	if answerService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = cfg

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening knowledge base: %w", err)
	}
	knowledgeStore = store

	var completion driven.CompletionService
	var ocr driven.OCRService

	apiKey := configStore.GetString("llm.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		logger.Warn("No API key configured, answers will be degraded fallbacks")
	} else {
		completion, err = openai.NewCompletionService(openai.Config{
			APIKey:  apiKey,
			BaseURL: configStore.GetString("llm.base_url"),
			Model:   configStore.GetString("llm.model"),
		})
		if err != nil {
			return fmt.Errorf("configuring completion service: %w", err)
		}

		ocr, err = vision.NewOCRService(vision.Config{
			APIKey:  apiKey,
			BaseURL: configStore.GetString("llm.base_url"),
			Model:   configStore.GetString("llm.vision_model"),
		})
		if err != nil {
			return fmt.Errorf("configuring OCR service: %w", err)
		}
	}

	answerService = services.NewAnswerService(knowledgeStore, completion, ocr, answerOptionsFromConfig())
	knowledgeService = services.NewKnowledgeService(knowledgeStore)

	return nil
}

// answerOptionsFromConfig reads the answer tunables from the config
// store. Zero values fall back to the service defaults.
func answerOptionsFromConfig() services.AnswerOptions {
	return services.AnswerOptions{
		MatchLimit:    configStore.GetInt("answer.match_limit"),
		ContextBudget: configStore.GetInt("answer.context_budget"),
		ExcerptLength: configStore.GetInt("answer.excerpt_length"),
		MaxTokens:     configStore.GetInt("answer.max_tokens"),
	}
}
