// Package helpcenter extracts titled, structured plain-text articles from
// help-center HTML snapshots.
package helpcenter

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/helpcenter-rag/internal/connectors/snapshot"
	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
	"github.com/custodia-labs/helpcenter-rag/internal/identifier"
)

// stopMarkers end content collection. Any heading whose text contains one of
// these (case-insensitive) starts the trailing boilerplate of an article.
var stopMarkers = []string{
	"was this article helpful",
	"related articles",
}

// Normaliser converts a raw HTML snapshot into a domain.Article.
type Normaliser struct{}

// New creates a new help-center normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise parses a snapshot and extracts the article title and ordered
// content blocks, stopping at the first boilerplate heading.
//
// The walk scopes to <main> when present, falling back to <body>. The first
// <h1> becomes the title; subsequent h2/h3 headings, paragraphs and list
// items become content blocks in document order. It is a pure transform.
func (n *Normaliser) Normalise(raw snapshot.RawDocument) (*domain.Article, error) {
	root, err := html.Parse(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrExtraction, raw.Path, err)
	}

	scope := findElement(root, "main")
	if scope == nil {
		scope = findElement(root, "body")
	}
	if scope == nil {
		scope = root
	}

	w := &walker{}
	w.walk(scope)

	if w.title == "" {
		return nil, fmt.Errorf("%w: no title heading in %s", domain.ErrExtraction, raw.Path)
	}
	if len(w.blocks) == 0 {
		return nil, fmt.Errorf("%w: no content after boilerplate removal in %s", domain.ErrExtraction, raw.Path)
	}

	lines := make([]string, len(w.blocks))
	for i, b := range w.blocks {
		switch b.Kind {
		case domain.BlockHeading:
			lines[i] = strings.Repeat("#", b.Level) + " " + b.Text
		case domain.BlockListItem:
			lines[i] = "- " + b.Text
		default:
			lines[i] = b.Text
		}
	}

	return &domain.Article{
		ID:         identifier.Normalise(w.title),
		Title:      w.title,
		SourcePath: raw.Path,
		Blocks:     w.blocks,
		Body:       strings.Join(lines, "\n"),
	}, nil
}

// walker collects the title and content blocks in document order.
type walker struct {
	title   string
	blocks  []domain.Block
	stopped bool
}

func (w *walker) walk(n *html.Node) {
	if w.stopped {
		return
	}

	if n.Type == html.ElementNode {
		switch n.Data {
		case "h1":
			if w.title == "" {
				w.title = nodeText(n)
			}
			return

		case "h2", "h3", "h4":
			text := nodeText(n)
			if isStopMarker(text) {
				w.stopped = true
				return
			}
			if w.title != "" && text != "" && n.Data != "h4" {
				level := 2
				if n.Data == "h3" {
					level = 3
				}
				w.blocks = append(w.blocks, domain.Block{
					Kind:  domain.BlockHeading,
					Level: level,
					Text:  text,
				})
			}
			return

		case "p", "li":
			if w.title == "" {
				return
			}
			text := nodeText(n)
			if text == "" {
				return
			}
			kind := domain.BlockParagraph
			if n.Data == "li" {
				kind = domain.BlockListItem
			}
			w.blocks = append(w.blocks, domain.Block{Kind: kind, Text: text})
			return

		case "script", "style", "noscript", "svg", "nav", "footer":
			return
		}
	}

	for c := n.FirstChild; c != nil && !w.stopped; c = c.NextSibling {
		w.walk(c)
	}
}

// isStopMarker reports whether heading text marks trailing boilerplate.
func isStopMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range stopMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// nodeText returns the node's text content with whitespace collapsed.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// findElement returns the first element with the given tag, depth first.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
