// Package config builds the application configuration object.
//
// Configuration is constructed once at startup and passed into the core
// services explicitly; the core never reads process environment itself.
// Values come from, in increasing precedence: built-in defaults, an
// optional TOML file (~/.helprag/config.toml by default), and environment
// variables. A .env file in the working directory is loaded first for
// local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
)

// Vector index backends.
const (
	BackendPinecone = "pinecone"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config holds all process configuration.
type Config struct {
	// OpenAIAPIKey authenticates embedding and generation calls. Required.
	OpenAIAPIKey string `toml:"openai_api_key"`

	// OpenAIBaseURL overrides the OpenAI API endpoint.
	OpenAIBaseURL string `toml:"openai_base_url"`

	// EmbeddingModel is used for both ingestion and query embedding.
	// It must never differ between the two paths.
	EmbeddingModel string `toml:"embedding_model"`

	// ChatModel generates answers.
	ChatModel string `toml:"chat_model"`

	// PineconeAPIKey authenticates vector index calls.
	// Required when VectorBackend is "pinecone".
	PineconeAPIKey string `toml:"pinecone_api_key"`

	// PineconeIndexHost is the index's data-plane host URL.
	// Required when VectorBackend is "pinecone".
	PineconeIndexHost string `toml:"pinecone_index_host"`

	// VectorBackend selects the vector index implementation:
	// pinecone, sqlite or memory.
	VectorBackend string `toml:"vector_backend"`

	// SQLitePath is the local index file for the sqlite backend.
	SQLitePath string `toml:"sqlite_path"`

	// SnapshotDir is the directory of help-center HTML snapshots.
	SnapshotDir string `toml:"snapshot_dir"`

	// MaxChars is the chunk size in characters.
	MaxChars int `toml:"max_chars"`

	// Overlap is the chunk overlap in characters.
	Overlap int `toml:"overlap"`

	// DefaultTopK is the retrieval depth when the caller does not set one.
	DefaultTopK int `toml:"default_top_k"`

	// MaxTopK bounds retrieval depth to cap cost and context size.
	MaxTopK int `toml:"max_top_k"`

	// MaxContextChars bounds the assembled context block.
	MaxContextChars int `toml:"max_context_chars"`

	// ListenAddr is the HTTP service address.
	ListenAddr string `toml:"listen_addr"`

	// PromptDir holds editable prompt files. Empty means the default.
	PromptDir string `toml:"prompt_dir"`
}

func defaults() Config {
	return Config{
		OpenAIBaseURL:   "https://api.openai.com/v1",
		EmbeddingModel:  "text-embedding-3-small",
		ChatModel:       "gpt-4o-mini",
		VectorBackend:   BackendPinecone,
		SQLitePath:      "helprag.db",
		SnapshotDir:     "data/raw",
		MaxChars:        1200,
		Overlap:         200,
		DefaultTopK:     5,
		MaxTopK:         20,
		MaxContextChars: 8000,
		ListenAddr:      ":8000",
	}
}

// Load builds the configuration. filePath selects the TOML file; empty
// means ~/.helprag/config.toml, which is optional. Environment variables
// override file values. The result is validated.
func Load(filePath string) (*Config, error) {
	// .env is a local development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := defaults()

	if filePath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			filePath = filepath.Join(home, ".helprag", "config.toml")
		}
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", filePath, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read config file %s: %w", filePath, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	strVars := map[string]*string{
		"OPENAI_API_KEY":      &cfg.OpenAIAPIKey,
		"OPENAI_BASE_URL":     &cfg.OpenAIBaseURL,
		"EMBEDDING_MODEL":     &cfg.EmbeddingModel,
		"CHAT_MODEL":          &cfg.ChatModel,
		"PINECONE_API_KEY":    &cfg.PineconeAPIKey,
		"PINECONE_INDEX_HOST": &cfg.PineconeIndexHost,
		"VECTOR_BACKEND":      &cfg.VectorBackend,
		"SQLITE_PATH":         &cfg.SQLitePath,
		"SNAPSHOT_DIR":        &cfg.SnapshotDir,
		"LISTEN_ADDR":         &cfg.ListenAddr,
		"PROMPT_DIR":          &cfg.PromptDir,
	}
	for name, dst := range strVars {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"CHUNK_MAX_CHARS":   &cfg.MaxChars,
		"CHUNK_OVERLAP":     &cfg.Overlap,
		"DEFAULT_TOP_K":     &cfg.DefaultTopK,
		"MAX_TOP_K":         &cfg.MaxTopK,
		"MAX_CONTEXT_CHARS": &cfg.MaxContextChars,
	}
	for name, dst := range intVars {
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
}

// Validate checks the configuration, failing fast before any processing.
func (c *Config) Validate() error {
	var missing []string
	if c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.VectorBackend == BackendPinecone {
		if c.PineconeAPIKey == "" {
			missing = append(missing, "PINECONE_API_KEY")
		}
		if c.PineconeIndexHost == "" {
			missing = append(missing, "PINECONE_INDEX_HOST")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required configuration: %v", domain.ErrInvalidInput, missing)
	}

	switch c.VectorBackend {
	case BackendPinecone, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown vector backend %q", domain.ErrInvalidInput, c.VectorBackend)
	}

	if c.Overlap <= 0 || c.Overlap >= c.MaxChars {
		return fmt.Errorf("%w: overlap %d must satisfy 0 < overlap < max_chars %d",
			domain.ErrInvalidChunkConfig, c.Overlap, c.MaxChars)
	}
	if c.DefaultTopK < 1 || c.MaxTopK < c.DefaultTopK {
		return fmt.Errorf("%w: top_k bounds default=%d max=%d", domain.ErrInvalidInput,
			c.DefaultTopK, c.MaxTopK)
	}
	if c.MaxContextChars < 1 {
		return fmt.Errorf("%w: max_context_chars must be positive", domain.ErrInvalidInput)
	}
	return nil
}
