// Package memory provides an in-memory vector index for tests and
// local experimentation. Similarity is brute-force cosine.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index holds embedding records in memory, keyed by chunk identifier.
type Index struct {
	mu      sync.RWMutex
	records map[string]domain.EmbeddingRecord
}

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{
		records: make(map[string]domain.EmbeddingRecord),
	}
}

// Upsert inserts or replaces records by chunk identifier.
func (x *Index) Upsert(ctx context.Context, records []domain.EmbeddingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	for _, rec := range records {
		x.records[rec.ID] = rec
	}
	return nil
}

// Query returns the topK records nearest the query vector by cosine
// similarity, ordered by non-increasing score.
func (x *Index) Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievalMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", domain.ErrInvalidInput)
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	matches := make([]domain.RetrievalMatch, 0, len(x.records))
	for _, rec := range x.records {
		matches = append(matches, domain.RetrievalMatch{
			ID:       rec.ID,
			Score:    cosine(vector, rec.Vector),
			Metadata: rec.Metadata,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})

	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

// Ping always succeeds.
func (x *Index) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}

// Len returns the number of stored records.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.records)
}

// cosine computes cosine similarity between two vectors. Mismatched
// lengths or zero vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
