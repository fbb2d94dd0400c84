package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driven"
)

// fakeEmbedder produces deterministic 3-dimensional vectors. Texts
// mentioning a keyword land on that keyword's axis so similarity in tests
// is predictable.
type fakeEmbedder struct {
	calls   int
	batches [][]string
	failErr error
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func (f *fakeEmbedder) vector(text string) []float32 {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "password"):
		return []float32{1, 0, 0}
	case strings.Contains(lower, "shipping"):
		return []float32{0, 1, 0}
	default:
		return []float32{0, 0, 1}
	}
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.vector(text), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	f.batches = append(f.batches, texts)
	if f.failErr != nil {
		return nil, f.failErr
	}
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i] = f.vector(t)
	}
	return vectors, nil
}

func (f *fakeEmbedder) Dimensions() int                { return 3 }
func (f *fakeEmbedder) ModelName() string              { return "fake-embedder" }
func (f *fakeEmbedder) Ping(ctx context.Context) error { return nil }
func (f *fakeEmbedder) Close() error                   { return nil }

// fakeIndex stores records in memory and scores by dot product.
type fakeIndex struct {
	records   map[string]domain.EmbeddingRecord
	queryErr  error
	upsertErr error
}

var _ driven.VectorIndex = (*fakeIndex)(nil)

func newFakeIndex() *fakeIndex {
	return &fakeIndex{records: make(map[string]domain.EmbeddingRecord)}
}

func (f *fakeIndex) Upsert(ctx context.Context, records []domain.EmbeddingRecord) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, rec := range records {
		f.records[rec.ID] = rec
	}
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievalMatch, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var matches []domain.RetrievalMatch
	for _, rec := range f.records {
		var score float64
		for i := range vector {
			if i < len(rec.Vector) {
				score += float64(vector[i]) * float64(rec.Vector[i])
			}
		}
		if score <= 0 {
			continue
		}
		matches = append(matches, domain.RetrievalMatch{ID: rec.ID, Score: score, Metadata: rec.Metadata})
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

func (f *fakeIndex) Ping(ctx context.Context) error { return nil }
func (f *fakeIndex) Close() error                   { return nil }

// fakeLLM records the messages it was asked with and returns a canned
// answer.
type fakeLLM struct {
	answer   string
	failErr  error
	messages []driven.ChatMessage
	opts     driven.ChatOptions
	calls    int
}

var _ driven.LLMService = (*fakeLLM)(nil)

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return f.Chat(ctx, []driven.ChatMessage{{Role: "user", Content: prompt}}, driven.ChatOptions{})
}

func (f *fakeLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	f.calls++
	f.messages = messages
	f.opts = opts
	if f.failErr != nil {
		return "", f.failErr
	}
	if f.answer == "" {
		return "canned answer", nil
	}
	return f.answer, nil
}

func (f *fakeLLM) ModelName() string              { return "fake-llm" }
func (f *fakeLLM) Ping(ctx context.Context) error { return nil }
func (f *fakeLLM) Close() error                   { return nil }

// fakePrompts serves a fixed system prompt.
type fakePrompts struct {
	prompt string
}

var _ driven.PromptStore = (*fakePrompts)(nil)

func (f *fakePrompts) Load(name string) (string, error) {
	if name != driven.PromptGroundedAnswer {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	if f.prompt == "" {
		return "answer only from the context", nil
	}
	return f.prompt, nil
}

func (f *fakePrompts) Reload() {}
