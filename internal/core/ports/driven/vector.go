package driven

import (
	"context"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
)

// VectorIndex persists embedding records and provides similarity search.
//
// The index is append/overwrite-only by identifier: re-ingesting upserts
// records wholesale. Implementations include the Pinecone data plane, a
// local sqlite-backed index, and an in-memory index for tests.
type VectorIndex interface {
	// Upsert inserts or replaces records by chunk identifier.
	Upsert(ctx context.Context, records []domain.EmbeddingRecord) error

	// Query finds the topK nearest records to the query vector,
	// ordered by non-increasing score.
	Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievalMatch, error)

	// Ping validates the index is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
