package domain

// Citation re-exposes a retrieval match as a source reference on an answer.
type Citation struct {
	// ID is the cited chunk identifier.
	ID string `json:"id"`

	// Score is the similarity score of the cited chunk.
	Score float64 `json:"score"`

	// Text is the chunk text the answer was grounded on.
	Text string `json:"text"`

	// ArticleID identifies the owning article.
	ArticleID string `json:"article_id"`

	// Title is the owning article's display title.
	Title string `json:"title"`

	// ChunkIndex is the chunk's position within the article.
	ChunkIndex int `json:"chunk_index"`
}

// Answer is a generated response with its supporting citations.
// Answers are ephemeral and produced per request.
type Answer struct {
	// Text is the generated answer. When retrieval produced no matches
	// this is an explicit "no relevant information" statement, never
	// fabricated content.
	Text string `json:"answer"`

	// Sources are the retrieval matches the answer was grounded on,
	// in descending score order. Empty when retrieval found nothing.
	Sources []Citation `json:"sources"`
}

// CitationFromMatch builds a citation from a retrieval match.
func CitationFromMatch(m RetrievalMatch) Citation {
	return Citation{
		ID:         m.ID,
		Score:      m.Score,
		Text:       m.Metadata.Text,
		ArticleID:  m.Metadata.ArticleID,
		Title:      m.Metadata.Title,
		ChunkIndex: m.Metadata.ChunkIndex,
	}
}
