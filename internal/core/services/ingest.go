package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/helpcenter-rag/internal/connectors/snapshot"
	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driven"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driving"
	"github.com/custodia-labs/helpcenter-rag/internal/logger"
	"github.com/custodia-labs/helpcenter-rag/internal/normalisers/helpcenter"
	"github.com/custodia-labs/helpcenter-rag/internal/postprocessors/chunker"
)

// Ensure IngestService implements the interface.
var _ driving.IngestOrchestrator = (*IngestService)(nil)

// IngestService runs the corpus loading batch: discover snapshots, extract
// articles, chunk them, embed the chunks and upsert into the vector index.
//
// Per-document failures (unextractable HTML, identifier collisions, empty
// bodies) are recorded and skipped; gateway failures abort the run.
type IngestService struct {
	loader     *snapshot.Loader
	normaliser *helpcenter.Normaliser
	embedder   driven.EmbeddingService
	index      driven.VectorIndex

	defaultDir      string
	defaultMaxChars int
	defaultOverlap  int
}

// NewIngestService creates a new ingestion orchestrator.
func NewIngestService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	defaultDir string,
	defaultMaxChars, defaultOverlap int,
) *IngestService {
	return &IngestService{
		loader:          snapshot.NewLoader(),
		normaliser:      helpcenter.New(),
		embedder:        embedder,
		index:           index,
		defaultDir:      defaultDir,
		defaultMaxChars: defaultMaxChars,
		defaultOverlap:  defaultOverlap,
	}
}

// Ingest performs one full ingestion run over the snapshot directory.
func (s *IngestService) Ingest(ctx context.Context, opts driving.IngestOptions) (*driving.IngestReport, error) {
	dir := opts.InputDir
	if dir == "" {
		dir = s.defaultDir
	}
	maxChars := opts.MaxChars
	if maxChars == 0 {
		maxChars = s.defaultMaxChars
	}
	overlap := opts.Overlap
	if overlap == 0 {
		overlap = s.defaultOverlap
	}

	// Chunk configuration is validated before any document is touched.
	proc, err := chunker.New(chunker.WithMaxChars(maxChars), chunker.WithOverlap(overlap))
	if err != nil {
		return nil, err
	}

	report := &driving.IngestReport{
		RunID:            uuid.New().String(),
		ChunksPerArticle: make(map[string]int),
	}

	logger.Section("Ingest")
	logger.Info("Run %s: loading snapshots from %s", report.RunID, dir)

	docs, err := s.loader.Load(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	report.DocumentsFound = len(docs)
	logger.Info("Found %d snapshot file(s)", len(docs))

	// Title of the article that first claimed each identifier, for
	// collision detection across distinct titles.
	claimed := make(map[string]string)

	var chunks []domain.Chunk
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		article, err := s.normaliser.Normalise(doc)
		if err != nil {
			logger.Warn("Skipping %s: %v", doc.Path, err)
			report.Skipped = append(report.Skipped, driving.SkippedDocument{
				Path:   doc.Path,
				Reason: err.Error(),
			})
			continue
		}

		if prev, ok := claimed[article.ID]; ok && prev != article.Title {
			err := fmt.Errorf("%w: %q and %q both normalise to %q",
				domain.ErrIdentifierCollision, prev, article.Title, article.ID)
			logger.Warn("Skipping %s: %v", doc.Path, err)
			report.Skipped = append(report.Skipped, driving.SkippedDocument{
				Path:   doc.Path,
				Reason: err.Error(),
			})
			continue
		}
		claimed[article.ID] = article.Title

		articleChunks := proc.Process(article)
		if len(articleChunks) == 0 {
			logger.Warn("Skipping %s: article %q produced no chunks", doc.Path, article.ID)
			report.Skipped = append(report.Skipped, driving.SkippedDocument{
				Path:   doc.Path,
				Reason: fmt.Sprintf("article %q produced no chunks", article.ID),
			})
			continue
		}

		logger.Debug("Article %q: %d chunk(s)", article.ID, len(articleChunks))
		report.ArticlesIngested++
		report.ChunksPerArticle[article.ID] = len(articleChunks)
		chunks = append(chunks, articleChunks...)
	}

	if len(chunks) == 0 {
		return report, fmt.Errorf("%w: no article produced any chunk", domain.ErrExtraction)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	logger.Info("Embedding %d chunk(s) with %s", len(chunks), s.embedder.ModelName())
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return report, wrapGateway("embed chunks", err)
	}
	if len(vectors) != len(chunks) {
		return report, fmt.Errorf("%w: embedding count mismatch: got %d, want %d",
			domain.ErrGateway, len(vectors), len(chunks))
	}

	records := make([]domain.EmbeddingRecord, len(chunks))
	for i, c := range chunks {
		records[i] = c.Record(vectors[i])
	}

	logger.Info("Upserting %d record(s)", len(records))
	if err := s.index.Upsert(ctx, records); err != nil {
		return report, wrapGateway("upsert records", err)
	}

	report.ChunksUpserted = len(records)
	logger.Info("Run %s complete: %d article(s), %d chunk(s), %d skipped",
		report.RunID, report.ArticlesIngested, report.ChunksUpserted, len(report.Skipped))
	return report, nil
}

// wrapGateway tags err with ErrGateway unless it already carries it.
func wrapGateway(op string, err error) error {
	if errors.Is(err, domain.ErrGateway) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrGateway, err)
}
