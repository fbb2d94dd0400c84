// Package pinecone provides a vector index adapter using the Pinecone
// data-plane REST API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultTimeout = 60 * time.Second

	// DefaultUpsertBatchSize caps records per upsert request. Pinecone
	// rejects payloads over 2MB; 100 records with metadata stays well under.
	DefaultUpsertBatchSize = 100
)

// Config holds configuration for the Pinecone index.
type Config struct {
	// APIKey is the Pinecone API key (required).
	APIKey string

	// IndexHost is the index data-plane host, e.g.
	// https://my-index-abc123.svc.us-east-1-aws.pinecone.io (required).
	IndexHost string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// UpsertBatchSize caps records per upsert request (default: 100).
	UpsertBatchSize int
}

// Index talks to a single Pinecone index over its data-plane REST API.
type Index struct {
	client    *http.Client
	host      string
	apiKey    string
	batchSize int
}

// vector is the Pinecone wire format for one record.
type vector struct {
	ID       string               `json:"id"`
	Values   []float32            `json:"values"`
	Metadata domain.ChunkMetadata `json:"metadata"`
}

type upsertRequest struct {
	Vectors []vector `json:"vectors"`
}

type upsertResponse struct {
	UpsertedCount int `json:"upsertedCount"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string               `json:"id"`
		Score    float64              `json:"score"`
		Metadata domain.ChunkMetadata `json:"metadata"`
	} `json:"matches"`
}

// NewIndex creates a new Pinecone index client.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.IndexHost == "" {
		return nil, fmt.Errorf("pinecone: index host is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UpsertBatchSize <= 0 {
		cfg.UpsertBatchSize = DefaultUpsertBatchSize
	}

	host := strings.TrimSuffix(cfg.IndexHost, "/")
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}

	return &Index{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		host:      host,
		apiKey:    cfg.APIKey,
		batchSize: cfg.UpsertBatchSize,
	}, nil
}

// Upsert inserts or replaces records by chunk identifier. Large record
// sets are split across sequential requests.
func (x *Index) Upsert(ctx context.Context, records []domain.EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}

	for start := 0; start < len(records); start += x.batchSize {
		end := start + x.batchSize
		if end > len(records) {
			end = len(records)
		}

		vectors := make([]vector, 0, end-start)
		for _, rec := range records[start:end] {
			vectors = append(vectors, vector{
				ID:       rec.ID,
				Values:   rec.Vector,
				Metadata: rec.Metadata,
			})
		}

		var resp upsertResponse
		if err := x.post(ctx, "/vectors/upsert", upsertRequest{Vectors: vectors}, &resp); err != nil {
			return fmt.Errorf("%w: pinecone upsert: %v", domain.ErrGateway, err)
		}
	}
	return nil
}

// Query finds the topK nearest records to the query vector.
func (x *Index) Query(ctx context.Context, vec []float32, topK int) ([]domain.RetrievalMatch, error) {
	var resp queryResponse
	req := queryRequest{
		Vector:          vec,
		TopK:            topK,
		IncludeMetadata: true,
	}
	if err := x.post(ctx, "/query", req, &resp); err != nil {
		return nil, fmt.Errorf("%w: pinecone query: %v", domain.ErrGateway, err)
	}

	matches := make([]domain.RetrievalMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, domain.RetrievalMatch{
			ID:       m.ID,
			Score:    m.Score,
			Metadata: m.Metadata,
		})
	}
	return matches, nil
}

// Ping validates the index is reachable via describe_index_stats.
func (x *Index) Ping(ctx context.Context) error {
	if err := x.post(ctx, "/describe_index_stats", struct{}{}, nil); err != nil {
		return fmt.Errorf("%w: pinecone ping: %v", domain.ErrGateway, err)
	}
	return nil
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}

// post sends a JSON POST to the data plane and decodes the response into
// out when out is non-nil.
func (x *Index) post(ctx context.Context, path string, payload, out any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.host+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", x.apiKey)

	resp, err := x.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
