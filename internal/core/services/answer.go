package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driven"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driving"
	"github.com/custodia-labs/helpcenter-rag/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// NoInformationAnswer is returned verbatim when retrieval finds nothing,
// so the model never gets a chance to fabricate an answer.
const NoInformationAnswer = "I could not find any relevant information in the help articles for your question."

// answerTemperature keeps generation close to the retrieved context.
const answerTemperature = 0.1

// AnswerService composes grounded answers from retrieved chunks.
type AnswerService struct {
	retriever *Retriever
	llm       driven.LLMService
	prompts   driven.PromptStore

	defaultTopK     int
	maxContextChars int
}

// NewAnswerService creates a new answer composer.
func NewAnswerService(
	retriever *Retriever,
	llm driven.LLMService,
	prompts driven.PromptStore,
	defaultTopK, maxContextChars int,
) *AnswerService {
	return &AnswerService{
		retriever:       retriever,
		llm:             llm,
		prompts:         prompts,
		defaultTopK:     defaultTopK,
		maxContextChars: maxContextChars,
	}
}

// Ask retrieves the most relevant chunks for the query and generates an
// answer grounded on them. topK <= 0 selects the configured default.
func (s *AnswerService) Ask(ctx context.Context, query string, topK int) (*domain.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = s.defaultTopK
	}

	matches, err := s.retriever.Retrieve(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	// No matches means no grounding material. Short-circuit with an
	// explicit statement instead of asking the model to improvise.
	if len(matches) == 0 {
		logger.Debug("No matches for query, returning fixed answer")
		return &domain.Answer{
			Text:    NoInformationAnswer,
			Sources: []domain.Citation{},
		}, nil
	}

	contextBlock := s.buildContext(matches)

	systemPrompt, err := s.prompts.Load(driven.PromptGroundedAnswer)
	if err != nil {
		return nil, fmt.Errorf("load system prompt: %w", err)
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextBlock, query)},
	}

	text, err := s.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: answerTemperature})
	if err != nil {
		return nil, wrapGateway("generate answer", err)
	}

	sources := make([]domain.Citation, len(matches))
	for i, m := range matches {
		sources[i] = domain.CitationFromMatch(m)
	}

	return &domain.Answer{
		Text:    strings.TrimSpace(text),
		Sources: sources,
	}, nil
}

// buildContext renders matches into the context block handed to the model.
// Segments are included whole until the character budget runs out; the
// first segment always survives, hard-truncated if it alone is oversize.
func (s *AnswerService) buildContext(matches []domain.RetrievalMatch) string {
	const separator = "\n\n---\n\n"

	segments := make([]string, 0, len(matches))
	for i, m := range matches {
		segments = append(segments, fmt.Sprintf(
			"[%d] Title: %s (chunk %d)\nChunk ID: %s\nContent:\n%s",
			i+1, m.Metadata.Title, m.Metadata.ChunkIndex, m.ID, m.Metadata.Text,
		))
	}

	var b strings.Builder
	var used int
	for i, seg := range segments {
		addition := len([]rune(seg))
		if i > 0 {
			addition += len(separator)
		}
		if i > 0 && used+addition > s.maxContextChars {
			logger.Debug("Context budget reached after %d of %d segment(s)", i, len(segments))
			break
		}
		if i == 0 && addition > s.maxContextChars {
			seg = string([]rune(seg)[:s.maxContextChars])
			addition = s.maxContextChars
		}
		if i > 0 {
			b.WriteString(separator)
		}
		b.WriteString(seg)
		used += addition
	}
	return b.String()
}
