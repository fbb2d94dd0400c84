// Package cli implements the helprag command line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/helpcenter-rag/internal/adapters/driven/config/file"
	embeddingopenai "github.com/custodia-labs/helpcenter-rag/internal/adapters/driven/embedding/openai"
	llmopenai "github.com/custodia-labs/helpcenter-rag/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/helpcenter-rag/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/helpcenter-rag/internal/adapters/driven/vector/pinecone"
	vectorsqlite "github.com/custodia-labs/helpcenter-rag/internal/adapters/driven/vector/sqlite"
	"github.com/custodia-labs/helpcenter-rag/internal/config"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driven"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driving"
	"github.com/custodia-labs/helpcenter-rag/internal/core/services"
	"github.com/custodia-labs/helpcenter-rag/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose    bool
	configPath string
)

// Services wired by initServices. Commands that need them call
// initServices in their RunE; version and help stay dependency-free.
var (
	cfg           *config.Config
	ingestService driving.IngestOrchestrator
	answerService driving.AnswerService
	vectorIndex   driven.VectorIndex
	promptStore   *file.PromptStore
	closers       []io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "helprag",
	Short: "Retrieval-augmented question answering over help-center articles",
	Long: `helprag ingests a local snapshot of help-center HTML articles into a
vector index and answers questions grounded on the retrieved content.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.helprag/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// initServices loads configuration and wires adapters and services.
// Idempotent: repeated calls are no-ops.
func initServices() error {
	if cfg != nil {
		return nil
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	embedder, err := embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.EmbeddingModel,
	})
	if err != nil {
		return fmt.Errorf("init embedding service: %w", err)
	}
	closers = append(closers, embedder)

	llm, err := llmopenai.NewLLMService(llmopenai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.ChatModel,
	})
	if err != nil {
		return fmt.Errorf("init LLM service: %w", err)
	}
	closers = append(closers, llm)

	vectorIndex, err = buildVectorIndex(cfg)
	if err != nil {
		return fmt.Errorf("init vector index: %w", err)
	}
	closers = append(closers, vectorIndex)

	promptStore, err = file.NewPromptStore(cfg.PromptDir)
	if err != nil {
		return fmt.Errorf("init prompt store: %w", err)
	}

	ingestService = services.NewIngestService(embedder, vectorIndex,
		cfg.SnapshotDir, cfg.MaxChars, cfg.Overlap)

	retriever := services.NewRetriever(embedder, vectorIndex, cfg.MaxTopK)
	answerService = services.NewAnswerService(retriever, llm, promptStore,
		cfg.DefaultTopK, cfg.MaxContextChars)

	logger.Debug("Services initialised (backend=%s)", cfg.VectorBackend)
	return nil
}

// buildVectorIndex selects the index backend from configuration.
func buildVectorIndex(cfg *config.Config) (driven.VectorIndex, error) {
	switch cfg.VectorBackend {
	case config.BackendPinecone:
		return pinecone.NewIndex(pinecone.Config{
			APIKey:    cfg.PineconeAPIKey,
			IndexHost: cfg.PineconeIndexHost,
		})
	case config.BackendSQLite:
		return vectorsqlite.NewIndex(cfg.SQLitePath)
	case config.BackendMemory:
		return memory.NewIndex(), nil
	default:
		return nil, fmt.Errorf("unknown vector backend %q", cfg.VectorBackend)
	}
}

func closeServices() {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Debug("Close failed: %v", err)
		}
	}
}
