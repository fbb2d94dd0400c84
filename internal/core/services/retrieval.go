package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driven"
	"github.com/custodia-labs/helpcenter-rag/internal/logger"
)

// Retriever embeds a query and finds its nearest chunks in the index.
//
// The query must be embedded with the same model used at ingestion;
// the retriever therefore shares the EmbeddingService instance with
// the ingestion orchestrator.
type Retriever struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	maxTopK  int
}

// NewRetriever creates a new retriever. maxTopK caps how many matches a
// single query may request.
func NewRetriever(embedder driven.EmbeddingService, index driven.VectorIndex, maxTopK int) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		maxTopK:  maxTopK,
	}
}

// Retrieve returns the topK chunks most similar to the query, ordered by
// non-increasing score. topK is clamped to [1, maxTopK] rather than
// rejected.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievalMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	if topK < 1 {
		topK = 1
	}
	if topK > r.maxTopK {
		topK = r.maxTopK
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", domain.ErrRetrieval, err)
	}

	matches, err := r.index.Query(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity search: %v", domain.ErrRetrieval, err)
	}

	// Backends are expected to return sorted results; enforce it anyway so
	// callers can rely on the ordering.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	logger.Debug("Retrieved %d match(es) for query (top_k=%d)", len(matches), topK)
	return matches, nil
}
