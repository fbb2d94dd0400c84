package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
)

func newAnswerService(index *fakeIndex, llm *fakeLLM, maxContextChars int) *AnswerService {
	retriever := NewRetriever(&fakeEmbedder{}, index, 20)
	return NewAnswerService(retriever, llm, &fakePrompts{}, 5, maxContextChars)
}

func TestAsk(t *testing.T) {
	index := newFakeIndex()
	seedIndex(t, index, 2)
	llm := &fakeLLM{answer: "Open the login page and click the link."}
	svc := newAnswerService(index, llm, 8000)

	answer, err := svc.Ask(context.Background(), "how do I reset my password", 2)
	require.NoError(t, err)

	assert.Equal(t, "Open the login page and click the link.", answer.Text)
	require.Len(t, answer.Sources, 2)
	assert.Equal(t, "reset-password", answer.Sources[0].ArticleID)
	assert.GreaterOrEqual(t, answer.Sources[0].Score, answer.Sources[1].Score)

	// The model saw the system prompt and the formatted context.
	require.Len(t, llm.messages, 2)
	assert.Equal(t, "system", llm.messages[0].Role)
	assert.Equal(t, "answer only from the context", llm.messages[0].Content)
	assert.InDelta(t, answerTemperature, llm.opts.Temperature, 1e-9)

	user := llm.messages[1].Content
	assert.True(t, strings.HasPrefix(user, "Context:\n"), "user message should start with context block")
	assert.Contains(t, user, "[1] Title: Reset Password (chunk")
	assert.Contains(t, user, "Chunk ID: reset-password-chunk-")
	assert.Contains(t, user, "\n\n---\n\n")
	assert.Contains(t, user, "\n\nQuestion: how do I reset my password")
}

func TestAsk_EmptyRetrievalShortCircuits(t *testing.T) {
	llm := &fakeLLM{}
	svc := newAnswerService(newFakeIndex(), llm, 8000)

	answer, err := svc.Ask(context.Background(), "something off topic entirely", 3)
	require.NoError(t, err)

	assert.Equal(t, NoInformationAnswer, answer.Text)
	assert.Empty(t, answer.Sources)
	assert.NotNil(t, answer.Sources, "sources should encode as [] not null")
	assert.Zero(t, llm.calls, "LLM must not be called without grounding material")
}

func TestAsk_DefaultTopK(t *testing.T) {
	index := newFakeIndex()
	seedIndex(t, index, 8)
	svc := newAnswerService(index, &fakeLLM{}, 8000)

	answer, err := svc.Ask(context.Background(), "password help", 0)
	require.NoError(t, err)
	assert.Len(t, answer.Sources, 5)
}

func TestAsk_EmptyQuery(t *testing.T) {
	svc := newAnswerService(newFakeIndex(), &fakeLLM{}, 8000)

	_, err := svc.Ask(context.Background(), "", 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAsk_LLMFailure(t *testing.T) {
	index := newFakeIndex()
	seedIndex(t, index, 1)
	svc := newAnswerService(index, &fakeLLM{failErr: errors.New("model overloaded")}, 8000)

	_, err := svc.Ask(context.Background(), "password help", 2)
	assert.ErrorIs(t, err, domain.ErrGateway)
}

func TestBuildContext_TruncatesWholeSegments(t *testing.T) {
	svc := &AnswerService{maxContextChars: 220}

	matches := []domain.RetrievalMatch{
		{ID: "a-chunk-0", Metadata: domain.ChunkMetadata{Title: "A", ChunkIndex: 0, Text: strings.Repeat("x", 100)}},
		{ID: "a-chunk-1", Metadata: domain.ChunkMetadata{Title: "A", ChunkIndex: 1, Text: strings.Repeat("y", 100)}},
	}

	got := svc.buildContext(matches)

	assert.Contains(t, got, "xxx")
	assert.NotContains(t, got, "yyy", "second segment exceeds the budget and is dropped whole")
	assert.NotContains(t, got, "---")
}

func TestBuildContext_FirstSegmentAlwaysSurvives(t *testing.T) {
	svc := &AnswerService{maxContextChars: 80}

	matches := []domain.RetrievalMatch{
		{ID: "a-chunk-0", Metadata: domain.ChunkMetadata{Title: "A", ChunkIndex: 0, Text: strings.Repeat("z", 500)}},
	}

	got := svc.buildContext(matches)

	assert.Len(t, []rune(got), 80)
	assert.True(t, strings.HasPrefix(got, "[1] Title: A (chunk 0)"))
}

func TestBuildContext_SegmentFormat(t *testing.T) {
	svc := &AnswerService{maxContextChars: 8000}

	matches := []domain.RetrievalMatch{
		{ID: "billing-chunk-2", Metadata: domain.ChunkMetadata{Title: "Billing FAQ", ChunkIndex: 2, Text: "chunk body"}},
	}

	want := "[1] Title: Billing FAQ (chunk 2)\nChunk ID: billing-chunk-2\nContent:\nchunk body"
	assert.Equal(t, want, svc.buildContext(matches))
}

func TestBuildContext_NumbersSegmentsFromOne(t *testing.T) {
	svc := &AnswerService{maxContextChars: 8000}

	var matches []domain.RetrievalMatch
	for i := 0; i < 3; i++ {
		matches = append(matches, domain.RetrievalMatch{
			ID:       fmt.Sprintf("a-chunk-%d", i),
			Metadata: domain.ChunkMetadata{Title: "A", ChunkIndex: i, Text: "t"},
		})
	}

	got := svc.buildContext(matches)
	assert.Contains(t, got, "[1] Title:")
	assert.Contains(t, got, "[2] Title:")
	assert.Contains(t, got, "[3] Title:")
}
