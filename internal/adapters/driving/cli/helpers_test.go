package cli

import (
	"context"

	"github.com/custodia-labs/helpcenter-rag/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/helpcenter-rag/internal/config"
	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driving"
)

// stubIngest returns a fixed report.
type stubIngest struct {
	report  *driving.IngestReport
	err     error
	gotOpts driving.IngestOptions
}

func (s *stubIngest) Ingest(ctx context.Context, opts driving.IngestOptions) (*driving.IngestReport, error) {
	s.gotOpts = opts
	return s.report, s.err
}

// stubAnswers returns a fixed answer.
type stubAnswers struct {
	answer  *domain.Answer
	err     error
	gotTopK int
}

func (s *stubAnswers) Ask(ctx context.Context, query string, topK int) (*domain.Answer, error) {
	s.gotTopK = topK
	return s.answer, s.err
}

// setupTestServices wires stub services into the package-level slots so
// commands run without config or network. Returns a cleanup restoring
// the untouched state.
func setupTestServices(ingest *stubIngest, answers *stubAnswers) func() {
	cfg = &config.Config{VectorBackend: config.BackendMemory}
	ingestService = ingest
	answerService = answers
	vectorIndex = memory.NewIndex()

	return func() {
		cfg = nil
		ingestService = nil
		answerService = nil
		vectorIndex = nil
	}
}
