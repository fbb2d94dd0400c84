// Package sqlite provides a local vector index backed by SQLite.
// Vectors are stored as little-endian float32 blobs and similarity
// search is brute-force cosine over all rows, which is fine at
// help-center scale (thousands of chunks, not millions).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
	"github.com/custodia-labs/helpcenter-rag/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id          TEXT PRIMARY KEY,
	article_id  TEXT NOT NULL,
	title       TEXT NOT NULL,
	chunk_index INTEGER NOT NULL,
	source_path TEXT NOT NULL,
	text        TEXT NOT NULL,
	vector      BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_article ON records(article_id);
`

// Index stores embedding records in a local SQLite database.
type Index struct {
	db *sql.DB
}

// NewIndex opens (or creates) the database at path and ensures the schema.
func NewIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: database path is required")
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	// SQLite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY churn under concurrent upserts.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Upsert inserts or replaces records by chunk identifier. Existing rows
// for the affected articles are deleted first so a re-ingested article
// that shrank does not leave stale trailing chunks behind.
func (x *Index) Upsert(ctx context.Context, records []domain.EmbeddingRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}
	defer tx.Rollback()

	articles := make(map[string]struct{})
	for _, rec := range records {
		articles[rec.Metadata.ArticleID] = struct{}{}
	}
	for articleID := range articles {
		if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE article_id = ?`, articleID); err != nil {
			return fmt.Errorf("sqlite: clear article %q: %w", articleID, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, article_id, title, chunk_index, source_path, text, vector)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			article_id  = excluded.article_id,
			title       = excluded.title,
			chunk_index = excluded.chunk_index,
			source_path = excluded.source_path,
			text        = excluded.text,
			vector      = excluded.vector
	`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		m := rec.Metadata
		if _, err := stmt.ExecContext(ctx, rec.ID, m.ArticleID, m.Title, m.ChunkIndex, m.SourcePath, m.Text, encodeVector(rec.Vector)); err != nil {
			return fmt.Errorf("sqlite: upsert record %q: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit upsert: %w", err)
	}
	return nil
}

// Query scans all rows and returns the topK nearest by cosine similarity,
// ordered by non-increasing score.
func (x *Index) Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievalMatch, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", domain.ErrInvalidInput)
	}

	rows, err := x.db.QueryContext(ctx, `SELECT id, article_id, title, chunk_index, source_path, text, vector FROM records`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query records: %w", err)
	}
	defer rows.Close()

	var matches []domain.RetrievalMatch
	for rows.Next() {
		var (
			m    domain.RetrievalMatch
			blob []byte
		)
		if err := rows.Scan(&m.ID, &m.Metadata.ArticleID, &m.Metadata.Title, &m.Metadata.ChunkIndex, &m.Metadata.SourcePath, &m.Metadata.Text, &blob); err != nil {
			return nil, fmt.Errorf("sqlite: scan record: %w", err)
		}
		stored, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("sqlite: record %q: %w", m.ID, err)
		}
		m.Score = cosine(vector, stored)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate records: %w", err)
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

// Ping validates the database is reachable.
func (x *Index) Ping(ctx context.Context) error {
	if err := x.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

// Close closes the database.
func (x *Index) Close() error {
	return x.db.Close()
}

// Count returns the number of stored records.
func (x *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := x.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count records: %w", err)
	}
	return n, nil
}

// encodeVector packs a float32 slice as a little-endian blob.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeVector unpacks a little-endian blob into a float32 slice.
func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("malformed vector blob (%d bytes)", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec, nil
}

// cosine computes cosine similarity. Mismatched lengths or zero
// vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
