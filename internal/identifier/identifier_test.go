package identifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalise(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "Creating forms", "creating-forms"},
		{"already normalised", "creating-forms", "creating-forms"},
		{"punctuation", "What's new? Find out!", "what-s-new-find-out"},
		{"em dash", "Forms — the basics", "forms-the-basics"},
		{"accents fold to ascii", "Créer un formulaire", "creer-un-formulaire"},
		{"repeated separators", "a  --  b", "a-b"},
		{"leading and trailing junk", "  ...hello...  ", "hello"},
		{"underscores kept", "snake_case_title", "snake_case_title"},
		{"uppercase lowered", "FAQ", "faq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalise(tt.input))
		})
	}
}

func TestNormalise_Idempotent(t *testing.T) {
	inputs := []string{
		"Creating forms",
		"Forms — the basics",
		"Créer un formulaire",
		"日本語のタイトル",
	}

	for _, in := range inputs {
		once := Normalise(in)
		assert.Equal(t, once, Normalise(once), "normalising %q twice", in)
	}
}

func TestNormalise_ASCIIOnly(t *testing.T) {
	out := Normalise("Многоязычные формы — инструкция")
	for _, r := range out {
		assert.Less(t, r, rune(128), "identifier contains non-ASCII rune %q", r)
	}
}

func TestNormalise_NeverEmpty(t *testing.T) {
	tests := []string{"", "日本語のタイトル", "——", "???"}

	for _, in := range tests {
		out := Normalise(in)
		assert.NotEmpty(t, out)
		assert.True(t, strings.HasPrefix(out, "article-") || out != "",
			"fallback expected for %q, got %q", in, out)
		// Deterministic: same input, same output.
		assert.Equal(t, out, Normalise(in))
	}
}

func TestNormalise_DistinctFallbacks(t *testing.T) {
	a := Normalise("日本語")
	b := Normalise("中文标题")
	assert.NotEqual(t, a, b)
}

func TestNormalise_Caps64(t *testing.T) {
	out := Normalise(strings.Repeat("very long title ", 20))
	assert.LessOrEqual(t, len(out), MaxArticleIDLen)
	assert.False(t, strings.HasSuffix(out, "-"))
}

func TestForChunk(t *testing.T) {
	assert.Equal(t, "creating-forms-chunk-0", ForChunk("creating-forms", 0))
	assert.Equal(t, "creating-forms-chunk-13", ForChunk("creating-forms", 13))
}

func TestForChunk_Caps96(t *testing.T) {
	long := strings.Repeat("a", 120)
	out := ForChunk(long, 7)
	assert.LessOrEqual(t, len(out), MaxChunkIDLen)
	assert.True(t, strings.HasSuffix(out, "-chunk-7"))
}
