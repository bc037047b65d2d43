package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soleParagraph(t *testing.T, doc *Document) *Paragraph {
	t.Helper()
	paras := doc.Paragraphs()
	require.Len(t, paras, 1)
	return paras[0]
}

func TestText_ConcatenatesRuns(t *testing.T) {
	doc := openBody(t, `<w:p>`+
		`<w:r><w:t>Hello, </w:t></w:r>`+
		`<w:r><w:rPr><w:b/></w:rPr><w:t>world</w:t></w:r>`+
		`</w:p>`)
	assert.Equal(t, "Hello, world", soleParagraph(t, doc).Text())
}

func TestText_IncludesHyperlinkRuns(t *testing.T) {
	doc := openBody(t, `<w:p>`+
		`<w:r><w:t>see </w:t></w:r>`+
		`<w:hyperlink><w:r><w:t>the exhibit</w:t></w:r></w:hyperlink>`+
		`</w:p>`)
	assert.Equal(t, "see the exhibit", soleParagraph(t, doc).Text())
}

func TestSetText_KeepsFirstRunFormatting(t *testing.T) {
	doc := openBody(t, `<w:p>`+
		`<w:r><w:rPr><w:b/></w:rPr><w:t>old </w:t></w:r>`+
		`<w:r><w:t>text</w:t></w:r>`+
		`</w:p>`)
	p := soleParagraph(t, doc)

	p.SetText("new text")
	assert.Equal(t, "new text", p.Text())

	runs := p.Runs()
	require.Len(t, runs, 1, "extra runs are removed")
	assert.True(t, runs[0].Bold(), "first run keeps its formatting")
}

func TestSetText_EmptyParagraphGainsRun(t *testing.T) {
	doc := openBody(t, `<w:p></w:p>`)
	p := soleParagraph(t, doc)

	p.SetText("added")
	assert.Equal(t, "added", p.Text())
}

func TestSetText_PreservesSurroundingWhitespace(t *testing.T) {
	doc := openBody(t, para("x"))
	p := soleParagraph(t, doc)

	p.SetText("  padded  ")
	assert.Equal(t, "  padded  ", p.Text())

	// The preserve attribute must survive a serialization round trip.
	data, err := doc.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(documentPartOf(t, data)), `xml:space="preserve"`)
}

func TestIndents(t *testing.T) {
	doc := openBody(t, `<w:p><w:pPr><w:ind w:left="720" w:right="360" w:firstLine="480"/></w:pPr>`+
		`<w:r><w:t>x</w:t></w:r></w:p>`)
	p := soleParagraph(t, doc)

	if v, ok := p.LeftIndent(); assert.True(t, ok) {
		assert.Equal(t, 36.0, v)
	}
	if v, ok := p.RightIndent(); assert.True(t, ok) {
		assert.Equal(t, 18.0, v)
	}
	if v, ok := p.FirstLineIndent(); assert.True(t, ok) {
		assert.Equal(t, 24.0, v)
	}
}

func TestIndents_StartEndAliases(t *testing.T) {
	doc := openBody(t, `<w:p><w:pPr><w:ind w:start="240" w:end="240"/></w:pPr>`+
		`<w:r><w:t>x</w:t></w:r></w:p>`)
	p := soleParagraph(t, doc)

	if v, ok := p.LeftIndent(); assert.True(t, ok) {
		assert.Equal(t, 12.0, v)
	}
	if v, ok := p.RightIndent(); assert.True(t, ok) {
		assert.Equal(t, 12.0, v)
	}
}

func TestHangingIndentIsNegative(t *testing.T) {
	doc := openBody(t, `<w:p><w:pPr><w:ind w:hanging="720"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`)
	p := soleParagraph(t, doc)

	if v, ok := p.FirstLineIndent(); assert.True(t, ok) {
		assert.Equal(t, -36.0, v)
	}

	// Setting a negative value stores a hanging indent again.
	p.SetFirstLineIndent(-18)
	if v, ok := p.FirstLineIndent(); assert.True(t, ok) {
		assert.Equal(t, -18.0, v)
	}

	// And a positive value clears the hanging form.
	p.SetFirstLineIndent(12)
	if v, ok := p.FirstLineIndent(); assert.True(t, ok) {
		assert.Equal(t, 12.0, v)
	}
}

func TestSetLeftIndent_RoundTrips(t *testing.T) {
	doc := openBody(t, para("x"))
	p := soleParagraph(t, doc)

	_, ok := p.LeftIndent()
	assert.False(t, ok, "no indent before set")

	p.SetLeftIndent(36)
	if v, ok := p.LeftIndent(); assert.True(t, ok) {
		assert.Equal(t, 36.0, v)
	}
}

func TestSpacing(t *testing.T) {
	doc := openBody(t, `<w:p><w:pPr><w:spacing w:before="120" w:after="240"/></w:pPr>`+
		`<w:r><w:t>x</w:t></w:r></w:p>`)
	p := soleParagraph(t, doc)

	if v, ok := p.SpaceBefore(); assert.True(t, ok) {
		assert.Equal(t, 6.0, v)
	}
	if v, ok := p.SpaceAfter(); assert.True(t, ok) {
		assert.Equal(t, 12.0, v)
	}
}

func TestSetSpacing_ClearsContextualSpacing(t *testing.T) {
	doc := openBody(t, `<w:p><w:pPr><w:contextualSpacing/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`)
	p := soleParagraph(t, doc)

	assert.True(t, p.ContextualSpacing())
	p.SetSpaceAfter(6)
	assert.False(t, p.ContextualSpacing(), "explicit spacing disables same-style suppression")
}

func TestLineSpacing(t *testing.T) {
	// Auto rule: 240ths of a line, assuming 12pt lines. 480 = double.
	doc := openBody(t, `<w:p><w:pPr><w:spacing w:line="480"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`)
	if v, ok := soleParagraph(t, doc).LineSpacing(); assert.True(t, ok) {
		assert.Equal(t, 24.0, v)
	}

	// Exact rule: twips.
	doc = openBody(t, `<w:p><w:pPr><w:spacing w:line="360" w:lineRule="exact"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`)
	if v, ok := soleParagraph(t, doc).LineSpacing(); assert.True(t, ok) {
		assert.Equal(t, 18.0, v)
	}
}

func TestSetLineSpacing_WritesExact(t *testing.T) {
	doc := openBody(t, para("x"))
	p := soleParagraph(t, doc)

	p.SetLineSpacing(14)
	if v, ok := p.LineSpacing(); assert.True(t, ok) {
		assert.Equal(t, 14.0, v)
	}
}

func TestAlignment(t *testing.T) {
	tests := []struct {
		jc   string
		want int
		name string
	}{
		{"center", AlignCenter, "center"},
		{"right", AlignRight, "right"},
		{"end", AlignRight, "right"},
		{"both", AlignJustify, "justify"},
		{"justify", AlignJustify, "justify"},
		{"left", AlignLeft, "left"},
	}
	for _, tt := range tests {
		doc := openBody(t, `<w:p><w:pPr><w:jc w:val="`+tt.jc+`"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`)
		p := soleParagraph(t, doc)
		assert.Equal(t, tt.want, p.Alignment(), "jc=%s", tt.jc)
		assert.Equal(t, tt.name, p.AlignmentName(), "jc=%s", tt.jc)
	}

	// Unaligned paragraphs report left.
	doc := openBody(t, para("x"))
	assert.Equal(t, AlignLeft, soleParagraph(t, doc).Alignment())
}

func TestSetAlignment_JustifyStoresBoth(t *testing.T) {
	doc := openBody(t, para("x"))
	p := soleParagraph(t, doc)

	p.SetAlignment(AlignJustify)
	assert.Equal(t, AlignJustify, p.Alignment())
	assert.Equal(t, "both", p.pPr(false).SelectElement("w:jc").SelectAttrValue("w:val", ""))
}

func TestStyleNameResolution(t *testing.T) {
	stylesXML := `<?xml version="1.0"?><w:styles ` + testNS + `>` +
		`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>` +
		`</w:styles>`
	doc := openDocx(t, map[string]string{
		documentPart: wrapBody(`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`),
		stylesPart:   stylesXML,
	})
	p := soleParagraph(t, doc)

	assert.Equal(t, "Heading1", p.StyleID())
	assert.Equal(t, "heading 1", p.StyleName())

	// Setting by display name resolves back to the id.
	p.SetStyle("heading 1")
	assert.Equal(t, "Heading1", p.StyleID())
}

func TestStyleName_FallsBackToID(t *testing.T) {
	doc := openBody(t, `<w:p><w:pPr><w:pStyle w:val="Mystery"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`)
	assert.Equal(t, "Mystery", soleParagraph(t, doc).StyleName())
}
