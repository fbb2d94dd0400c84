// Package identifier derives stable, storage-safe identifiers for articles
// and chunks from arbitrary display titles.
//
// Identifiers are ASCII-only, lowercase and kebab-case so they are safe as
// vector index keys. Normalisation is deterministic and idempotent.
package identifier

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxArticleIDLen caps article identifiers.
const MaxArticleIDLen = 64

// MaxChunkIDLen caps chunk identifiers, which carry a -chunk-N suffix.
const MaxChunkIDLen = 96

var (
	// asciiFold decomposes accented characters and drops the combining marks,
	// so "café" folds to "cafe" instead of losing the rune entirely.
	asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

	unsafeRuns = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Normalise turns an arbitrary title into a storage-safe identifier.
// Non-ASCII characters are transliterated where possible and dropped
// otherwise; anything outside [a-z0-9_-] becomes a hyphen; hyphen runs
// collapse; leading and trailing hyphens are trimmed.
//
// The result is never empty: titles with no ASCII alphanumerics fall back
// to a fixed placeholder plus a hash fragment of the original input.
func Normalise(raw string) string {
	folded, _, err := transform.String(asciiFold, raw)
	if err != nil {
		folded = raw
	}

	var b strings.Builder
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		}
	}

	safe := unsafeRuns.ReplaceAllString(b.String(), "-")
	safe = hyphenRuns.ReplaceAllString(safe, "-")
	safe = strings.Trim(safe, "-")
	safe = strings.ToLower(safe)
	if len(safe) > MaxArticleIDLen {
		safe = strings.Trim(safe[:MaxArticleIDLen], "-")
	}
	if safe == "" {
		return fallback(raw)
	}
	return safe
}

// ForChunk derives a chunk identifier from an article identifier and the
// chunk's 0-based index. The article part is shortened if needed so the
// suffix always survives intact.
func ForChunk(articleID string, index int) string {
	suffix := fmt.Sprintf("-chunk-%d", index)
	if len(articleID)+len(suffix) > MaxChunkIDLen {
		articleID = strings.TrimRight(articleID[:MaxChunkIDLen-len(suffix)], "-")
	}
	return articleID + suffix
}

// fallback produces a deterministic placeholder identifier for inputs
// with no usable ASCII content.
func fallback(raw string) string {
	h := fnv.New64a()
	h.Write([]byte(raw))
	return fmt.Sprintf("article-%08x", uint32(h.Sum64()))
}
