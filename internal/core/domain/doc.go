// Package domain defines the core business entities for the help-center
// RAG pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Article: A cleaned help-center article extracted from an HTML snapshot
//   - Chunk: An overlapping slice of an article's body, the unit of retrieval
//   - EmbeddingRecord: A chunk paired with its vector, as stored in the index
//   - RetrievalMatch: A scored chunk returned by similarity search
//   - Answer: A generated answer with its source citations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
