package domain

// BlockKind identifies the structural role of a content block.
type BlockKind int

const (
	// BlockHeading is a section heading (levels 2-3).
	BlockHeading BlockKind = iota

	// BlockParagraph is a paragraph of body text.
	BlockParagraph

	// BlockListItem is a single list entry.
	BlockListItem
)

// Block is one structural unit of an extracted article, in document order.
type Block struct {
	// Kind is the structural role of the block.
	Kind BlockKind

	// Level is the heading level (2 or 3). Zero for non-headings.
	Level int

	// Text is the cleaned text content without markup.
	Text string
}

// Article is a help-center article after extraction and cleaning.
// Extraction stops before trailing boilerplate ("related articles" etc),
// so Blocks and Body contain meaningful content only.
type Article struct {
	// ID is the normalised, storage-safe identifier derived from the title.
	ID string

	// Title is the original display title from the article's h1.
	Title string

	// SourcePath is the path of the originating snapshot file.
	SourcePath string

	// Blocks are the content blocks in document order.
	Blocks []Block

	// Body is the flattened text of all blocks joined by single newlines,
	// with markdown-style heading and list markers preserved.
	Body string
}

// Chunk is a fixed-size overlapping slice of an article's body.
// A chunk belongs to exactly one article and has no independent lifecycle.
type Chunk struct {
	// ID is the normalised chunk identifier (<article-id>-chunk-<index>).
	ID string

	// ArticleID links back to the owning article.
	ArticleID string

	// Title is the owning article's title, copied for display.
	Title string

	// Index is the 0-based position of the chunk within the article.
	Index int

	// Text is the chunk's slice of the article body. Never empty.
	Text string

	// SourcePath is the owning article's snapshot path, copied for provenance.
	SourcePath string
}

// ChunkMetadata is the metadata stored alongside a vector in the index.
// It mirrors Chunk so matches can be rendered without a second lookup.
type ChunkMetadata struct {
	ArticleID  string `json:"article_id"`
	Title      string `json:"title"`
	ChunkIndex int    `json:"chunk_index"`
	SourcePath string `json:"source_path"`
	Text       string `json:"text"`
}

// EmbeddingRecord is the immutable unit persisted in the vector index.
// Re-ingestion replaces records wholesale by id.
type EmbeddingRecord struct {
	// ID is the chunk identifier.
	ID string

	// Vector is the fixed-dimension embedding of the chunk text.
	Vector []float32

	// Metadata carries the chunk fields for retrieval-time display.
	Metadata ChunkMetadata
}

// RetrievalMatch is a scored chunk returned by similarity search.
// Matches are ephemeral: produced fresh per query, never persisted.
type RetrievalMatch struct {
	// ID is the matched chunk identifier.
	ID string

	// Score is the similarity score, higher is more relevant.
	Score float64

	// Metadata is the stored chunk metadata.
	Metadata ChunkMetadata
}

// Record converts a chunk and its vector into an EmbeddingRecord.
func (c Chunk) Record(vector []float32) EmbeddingRecord {
	return EmbeddingRecord{
		ID:     c.ID,
		Vector: vector,
		Metadata: ChunkMetadata{
			ArticleID:  c.ArticleID,
			Title:      c.Title,
			ChunkIndex: c.Index,
			SourcePath: c.SourcePath,
			Text:       c.Text,
		},
	}
}
