package driving

import "context"

// IngestOptions override ingestion defaults. Zero values mean
// "use the configured default".
type IngestOptions struct {
	// InputDir is the snapshot directory to ingest.
	InputDir string

	// MaxChars is the chunk size in characters.
	MaxChars int

	// Overlap is the chunk overlap in characters.
	Overlap int
}

// SkippedDocument records a document the batch could not ingest and why.
type SkippedDocument struct {
	// Path is the snapshot file that was skipped.
	Path string

	// Reason is a human-readable explanation.
	Reason string
}

// IngestReport summarises one ingestion run.
type IngestReport struct {
	// RunID uniquely identifies the run.
	RunID string

	// DocumentsFound is the number of snapshot files discovered.
	DocumentsFound int

	// ArticlesIngested is the number of articles that produced chunks.
	ArticlesIngested int

	// ChunksUpserted is the total number of embedding records written.
	ChunksUpserted int

	// ChunksPerArticle maps article id to its chunk count. A drop between
	// runs means stale tail chunks may remain in the index.
	ChunksPerArticle map[string]int

	// Skipped lists documents excluded from the run with reasons.
	Skipped []SkippedDocument
}

// IngestOrchestrator performs the one-shot corpus loading batch job.
// Re-running it is the only supported way to refresh content; concurrent
// runs must be serialised by the caller.
type IngestOrchestrator interface {
	// Ingest discovers snapshots, extracts and chunks articles, embeds
	// the chunks and upserts them into the vector index.
	//
	// Per-document failures are recorded in the report and do not abort
	// the batch. The run fails when configuration is invalid, a gateway
	// call fails, or no article produced any chunk.
	Ingest(ctx context.Context, opts IngestOptions) (*IngestReport, error)
}
