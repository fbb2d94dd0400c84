package driving

import (
	"context"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
)

// AnswerService answers user questions from the ingested corpus.
type AnswerService interface {
	// Ask retrieves the topK most relevant chunks for the query and
	// composes a grounded answer with citations. topK outside the
	// configured bounds is clamped, not rejected.
	//
	// When retrieval finds nothing, Ask returns a well-formed answer
	// stating that no relevant information was found; it never fabricates
	// content and never errors for an empty result.
	Ask(ctx context.Context, query string, topK int) (*domain.Answer, error)
}
