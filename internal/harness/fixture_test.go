package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedocs/redline/internal/docx"
)

func buildFixture(t *testing.T, f *Fixture) *docx.Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.docx")
	require.NoError(t, f.WriteFile(path))
	doc, err := docx.Open(path)
	require.NoError(t, err)
	return doc
}

func TestFixture_ParagraphsRoundTrip(t *testing.T) {
	doc := buildFixture(t, &Fixture{
		Paragraphs: []FixtureParagraph{
			{Text: "First paragraph"},
			{Text: "Second paragraph"},
		},
	})

	paras := doc.Paragraphs()
	require.Len(t, paras, 2)
	assert.Equal(t, "First paragraph", paras[0].Text())
	assert.Equal(t, "Second paragraph", paras[1].Text())
}

func TestFixture_StyleResolvesToName(t *testing.T) {
	doc := buildFixture(t, &Fixture{
		Styles: []FixtureStyle{{ID: "Heading1", Name: "heading 1"}},
		Paragraphs: []FixtureParagraph{
			{Text: "Argument", Style: "Heading1"},
		},
	})

	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "heading 1", paras[0].StyleName())
}

func TestFixture_ListMarkersRender(t *testing.T) {
	doc := buildFixture(t, &Fixture{
		Lists: []FixtureList{{Name: "main", Format: "decimal"}},
		Paragraphs: []FixtureParagraph{
			{Text: "one", List: "main"},
			{Text: "two", List: "main"},
			{Text: "plain"},
		},
	})

	paras := doc.Paragraphs()
	require.Len(t, paras, 3)
	assert.True(t, paras[0].IsListItem())
	assert.Equal(t, "1.", paras[0].ListMarker())
	assert.Equal(t, "2.", paras[1].ListMarker())
	assert.False(t, paras[2].IsListItem())
}

func TestFixture_BulletList(t *testing.T) {
	doc := buildFixture(t, &Fixture{
		Lists: []FixtureList{{Name: "bullets", Format: "bullet"}},
		Paragraphs: []FixtureParagraph{
			{Text: "item", List: "bullets"},
		},
	})

	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	assert.Equal(t, "•", paras[0].ListMarker())
}

func TestFixture_RunFormatting(t *testing.T) {
	doc := buildFixture(t, &Fixture{
		Paragraphs: []FixtureParagraph{
			{Text: "bold text", Bold: true},
			{Text: "italic text", Italic: true},
		},
	})

	paras := doc.Paragraphs()
	require.Len(t, paras, 2)

	v, ok := paras[0].GetProperty("Range.Font.Bold")
	require.True(t, ok)
	assert.Equal(t, true, v)

	v, ok = paras[1].GetProperty("Range.Font.Italic")
	require.True(t, ok)
	assert.Equal(t, true, v)
}

func TestFixture_UnknownListRejected(t *testing.T) {
	f := &Fixture{
		Paragraphs: []FixtureParagraph{{Text: "x", List: "nope"}},
	}
	_, err := f.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown list "nope"`)
}

func TestFixture_TableCellParagraphs(t *testing.T) {
	doc := buildFixture(t, &Fixture{
		Paragraphs: []FixtureParagraph{
			{Text: "in cell one", Table: true},
			{Text: "in cell two", Table: true},
			{Text: "in body"},
		},
	})

	paras := doc.Paragraphs()
	require.Len(t, paras, 3)
	// Body paragraphs enumerate before table cell paragraphs.
	assert.Equal(t, "in body", paras[0].Text())
	assert.Equal(t, "in cell one", paras[1].Text())
	assert.Equal(t, "in cell two", paras[2].Text())
}
