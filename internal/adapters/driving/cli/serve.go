package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opencourse-labs/virta/internal/adapters/driving/httpapi"
	"github.com/opencourse-labs/virta/internal/core/services"
	"github.com/opencourse-labs/virta/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the answering API over HTTP",
	Long: `Starts the HTTP server exposing the answering API:

  POST /api          answer a question (JSON body: question, optional image)
  GET  /health       liveness check
  GET  /api/summary  knowledge base statistics
  GET  /metrics      Prometheus metrics

The server reloads configuration when the config file changes and shuts
down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if answerService == nil || knowledgeService == nil {
		return errors.New("services not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Live config reload runs alongside the server when the store
	// supports watching. Each reload pushes the answer tunables back
	// into the running service; credential and model changes still
	// need a restart.
	if watcher, ok := configStore.(interface {
		Watch(context.Context, func()) error
	}); ok {
		go func() {
			if err := watcher.Watch(ctx, applyAnswerConfig); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	server := httpapi.NewServer(answerService, knowledgeService, serveAddr)
	return server.Run(ctx)
}

// applyAnswerConfig pushes the freshly reloaded answer tunables into
// the running answer service.
func applyAnswerConfig() {
	configurable, ok := answerService.(interface {
		Configure(services.AnswerOptions)
	})
	if !ok {
		return
	}
	configurable.Configure(answerOptionsFromConfig())
	logger.Info("answer tunables reapplied from config")
}
