// Package chunker provides a fixed-size text chunking processor.
package chunker

import (
	"fmt"

	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
	"github.com/custodia-labs/helpcenter-rag/internal/identifier"
)

// DefaultMaxChars is the default number of characters per chunk.
const DefaultMaxChars = 1200

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// Processor splits article bodies into fixed-size overlapping chunks.
//
// Chunk boundaries are character-offset based, not semantic: chunk i starts
// at i*(maxChars-overlap) and spans up to maxChars characters. The overlap
// window carries section context across boundaries.
type Processor struct {
	maxChars int
	overlap  int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxChars sets the chunk size in characters.
func WithMaxChars(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.maxChars = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap > 0 {
			p.overlap = overlap
		}
	}
}

// New creates a chunker with the given options. The overlap must satisfy
// 0 < overlap < maxChars; anything else fails before any processing.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		maxChars: DefaultMaxChars,
		overlap:  DefaultOverlap,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.overlap <= 0 || p.overlap >= p.maxChars {
		return nil, fmt.Errorf("%w: overlap %d must satisfy 0 < overlap < max_chars %d",
			domain.ErrInvalidChunkConfig, p.overlap, p.maxChars)
	}
	return p, nil
}

// MaxChars returns the configured chunk size.
func (p *Processor) MaxChars() int { return p.maxChars }

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int { return p.overlap }

// Process splits the article body into ordered chunks covering the whole
// body with no gaps. The last chunk may be shorter than maxChars. An empty
// body yields no chunks; the caller decides whether that is a warning.
func (p *Processor) Process(article *domain.Article) []domain.Chunk {
	body := []rune(article.Body)
	if len(body) == 0 {
		return nil
	}

	step := p.maxChars - p.overlap
	estimated := len(body)/step + 1
	chunks := make([]domain.Chunk, 0, estimated)

	for start, index := 0, 0; start < len(body); start, index = start+step, index+1 {
		end := start + p.maxChars
		if end > len(body) {
			end = len(body)
		}

		chunks = append(chunks, domain.Chunk{
			ID:         identifier.ForChunk(article.ID, index),
			ArticleID:  article.ID,
			Title:      article.Title,
			Index:      index,
			Text:       string(body[start:end]),
			SourcePath: article.SourcePath,
		})

		if end == len(body) {
			break
		}
	}
	return chunks
}
