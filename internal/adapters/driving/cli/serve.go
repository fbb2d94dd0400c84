package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/helpcenter-rag/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/helpcenter-rag/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the question-answering HTTP server",
	Long: `Starts an HTTP server exposing GET /health and POST /ask_question.
Prompt files are watched for changes while the server runs.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Pick up prompt edits without a restart.
	go func() {
		if err := promptStore.Watch(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("Prompt watcher stopped: %v", err)
		}
	}()

	server := httpapi.NewServer(answerService, vectorIndex)
	return server.Run(ctx, addr)
}
