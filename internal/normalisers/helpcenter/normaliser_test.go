package helpcenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/helpcenter-rag/internal/connectors/snapshot"
	"github.com/custodia-labs/helpcenter-rag/internal/core/domain"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head><title>page title</title><style>.x{color:red}</style></head>
<body>
<nav><p>Home &gt; Help</p></nav>
<main>
  <h1>Creating   forms</h1>
  <p>Forms are the heart of the product.</p>
  <h2>Getting started</h2>
  <p>Click <b>Create</b> to begin.</p>
  <ul>
    <li>Pick a template</li>
    <li>Add questions</li>
  </ul>
  <h3>Advanced settings</h3>
  <p>Tweak the defaults when needed.</p>
  <h3>Was this article helpful?</h3>
  <p>Yes / No</p>
  <h2>Related articles</h2>
  <li>Some other article</li>
</main>
<footer><p>Copyright</p></footer>
</body>
</html>`

func TestNormalise(t *testing.T) {
	article, err := New().Normalise(snapshot.RawDocument{
		Path:    "data/raw/creating-forms.html",
		Content: []byte(sampleHTML),
	})
	require.NoError(t, err)

	assert.Equal(t, "creating-forms", article.ID)
	assert.Equal(t, "Creating forms", article.Title)
	assert.Equal(t, "data/raw/creating-forms.html", article.SourcePath)

	expectedBody := "Forms are the heart of the product.\n" +
		"## Getting started\n" +
		"Click Create to begin.\n" +
		"- Pick a template\n" +
		"- Add questions\n" +
		"### Advanced settings\n" +
		"Tweak the defaults when needed."
	assert.Equal(t, expectedBody, article.Body)

	// Everything after the first boilerplate marker is excluded.
	assert.NotContains(t, article.Body, "Yes / No")
	assert.NotContains(t, article.Body, "Some other article")
	// Navigation and footer boilerplate never appears.
	assert.NotContains(t, article.Body, "Copyright")
	assert.NotContains(t, article.Body, "Home")
	// The title is not repeated as a content block.
	assert.NotContains(t, article.Body, "Creating forms")
}

func TestNormalise_Blocks(t *testing.T) {
	article, err := New().Normalise(snapshot.RawDocument{
		Path:    "a.html",
		Content: []byte(sampleHTML),
	})
	require.NoError(t, err)

	require.Len(t, article.Blocks, 7)
	assert.Equal(t, domain.BlockParagraph, article.Blocks[0].Kind)
	assert.Equal(t, domain.BlockHeading, article.Blocks[1].Kind)
	assert.Equal(t, 2, article.Blocks[1].Level)
	assert.Equal(t, domain.BlockListItem, article.Blocks[3].Kind)
	assert.Equal(t, 3, article.Blocks[5].Level)
}

func TestNormalise_NoTitle(t *testing.T) {
	_, err := New().Normalise(snapshot.RawDocument{
		Path:    "untitled.html",
		Content: []byte("<html><body><p>text without heading</p></body></html>"),
	})
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestNormalise_EmptyAfterBoilerplate(t *testing.T) {
	page := `<html><body><main>
		<h1>Ghost article</h1>
		<h2>Related articles</h2>
		<li>Other</li>
	</main></body></html>`

	_, err := New().Normalise(snapshot.RawDocument{Path: "ghost.html", Content: []byte(page)})
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestNormalise_StopMarkerCaseInsensitive(t *testing.T) {
	page := `<html><body>
		<h1>Title</h1>
		<p>Kept.</p>
		<h2>RELATED ARTICLES</h2>
		<p>Dropped.</p>
	</body></html>`

	article, err := New().Normalise(snapshot.RawDocument{Path: "a.html", Content: []byte(page)})
	require.NoError(t, err)
	assert.Equal(t, "Kept.", article.Body)
}

func TestNormalise_EntitiesDecoded(t *testing.T) {
	page := `<html><body><main>
		<h1>Caf&eacute; setup &mdash; basics</h1>
		<p>Drag &amp; drop questions.</p>
	</main></body></html>`

	article, err := New().Normalise(snapshot.RawDocument{Path: "a.html", Content: []byte(page)})
	require.NoError(t, err)
	assert.Equal(t, "Café setup — basics", article.Title)
	assert.Equal(t, "cafe-setup-basics", article.ID)
	assert.Equal(t, "Drag & drop questions.", article.Body)
}

func TestNormalise_NoMainFallsBackToBody(t *testing.T) {
	page := `<html><body><h1>Plain</h1><p>Body only.</p></body></html>`

	article, err := New().Normalise(snapshot.RawDocument{Path: "a.html", Content: []byte(page)})
	require.NoError(t, err)
	assert.Equal(t, "Plain", article.Title)
	assert.Equal(t, "Body only.", article.Body)
}

func TestNormalise_NestedParagraphNotDuplicated(t *testing.T) {
	page := `<html><body>
		<h1>Title</h1>
		<ul><li><p>Nested text</p></li></ul>
	</body></html>`

	article, err := New().Normalise(snapshot.RawDocument{Path: "a.html", Content: []byte(page)})
	require.NoError(t, err)
	assert.Equal(t, "- Nested text", article.Body)
}
