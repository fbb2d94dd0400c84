package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrExtraction indicates a snapshot could not be turned into an
	// article (no title heading, or empty after boilerplate removal).
	// Per-document and recoverable: the batch skips the document.
	ErrExtraction = errors.New("article extraction failed")

	// ErrInvalidChunkConfig indicates invalid chunking parameters
	// (overlap outside 0 < overlap < max_chars). Fatal to the run,
	// checked before any document is processed.
	ErrInvalidChunkConfig = errors.New("invalid chunking configuration")

	// ErrIdentifierCollision indicates two distinct article titles
	// normalised to the same identifier. Surfaced, never silently merged.
	ErrIdentifierCollision = errors.New("article identifier collision")

	// ErrGateway indicates an embedding, vector-store, or generation
	// call failed. Propagated to the caller, not retried internally.
	ErrGateway = errors.New("gateway failure")

	// ErrRetrieval indicates similarity search failed.
	// The caller decides whether to treat it as "no answer" or propagate.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
