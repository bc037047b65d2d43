package harness

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/beevik/etree"
)

const wordMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// Boilerplate package parts. These never vary between fixtures; only the
// word/ parts carry scenario content.
const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/><Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/><Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/></Types>`

	rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

	documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/></Relationships>`
)

// Fixture describes a document to synthesize for a scenario. Fixtures
// produce complete DOCX packages so scenarios exercise the same parsing
// path as real documents.
type Fixture struct {
	Paragraphs []FixtureParagraph `yaml:"paragraphs"`
	Styles     []FixtureStyle     `yaml:"styles,omitempty"`
	Lists      []FixtureList      `yaml:"lists,omitempty"`
}

// FixtureParagraph is one paragraph of the synthesized document.
type FixtureParagraph struct {
	Text   string `yaml:"text"`
	Style  string `yaml:"style,omitempty"`  // style id declared in Styles
	List   string `yaml:"list,omitempty"`   // list name declared in Lists
	Level  int    `yaml:"level,omitempty"`  // list indentation level
	Bold   bool   `yaml:"bold,omitempty"`   // initial run formatting
	Italic bool   `yaml:"italic,omitempty"` //
	Table  bool   `yaml:"table,omitempty"`  // place inside a table cell
}

// FixtureStyle declares a paragraph style. Id is what pStyle references,
// Name is the display name rules match on.
type FixtureStyle struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// FixtureList declares a numbering definition. Format follows the
// WordprocessingML numFmt vocabulary (decimal, lowerLetter, upperRoman,
// bullet, ...). Text is the lvlText template, defaulting to "%1.".
type FixtureList struct {
	Name   string `yaml:"name"`
	Format string `yaml:"format,omitempty"`
	Text   string `yaml:"text,omitempty"`
}

// Build serializes the fixture as a DOCX package.
func (f *Fixture) Build() ([]byte, error) {
	listIDs := make(map[string]int)
	for i, l := range f.Lists {
		if l.Name == "" {
			return nil, fmt.Errorf("lists[%d]: name is required", i)
		}
		listIDs[l.Name] = i + 1
	}

	docXML, err := f.documentXML(listIDs)
	if err != nil {
		return nil, err
	}
	stylesXML, err := f.stylesXML()
	if err != nil {
		return nil, err
	}
	numberingXML, err := f.numberingXML()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/document.xml", docXML},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", numberingXML},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile builds the fixture and writes it to path.
func (f *Fixture) WriteFile(path string) error {
	data, err := f.Build()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (f *Fixture) documentXML(listIDs map[string]int) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", wordMLNamespace)
	body := root.CreateElement("w:body")

	// Consecutive table paragraphs share one single-cell table so scenarios
	// can exercise the body-then-tables enumeration order.
	var cell *etree.Element
	for i, fp := range f.Paragraphs {
		parent := body
		if fp.Table {
			if cell == nil {
				tbl := body.CreateElement("w:tbl")
				row := tbl.CreateElement("w:tr")
				cell = row.CreateElement("w:tc")
			}
			parent = cell
		} else {
			cell = nil
		}

		p := parent.CreateElement("w:p")
		if fp.Style != "" || fp.List != "" {
			pPr := p.CreateElement("w:pPr")
			if fp.Style != "" {
				pPr.CreateElement("w:pStyle").CreateAttr("w:val", fp.Style)
			}
			if fp.List != "" {
				numID, ok := listIDs[fp.List]
				if !ok {
					return nil, fmt.Errorf("paragraphs[%d]: unknown list %q", i, fp.List)
				}
				numPr := pPr.CreateElement("w:numPr")
				numPr.CreateElement("w:ilvl").CreateAttr("w:val", strconv.Itoa(fp.Level))
				numPr.CreateElement("w:numId").CreateAttr("w:val", strconv.Itoa(numID))
			}
		}

		r := p.CreateElement("w:r")
		if fp.Bold || fp.Italic {
			rPr := r.CreateElement("w:rPr")
			if fp.Bold {
				rPr.CreateElement("w:b")
			}
			if fp.Italic {
				rPr.CreateElement("w:i")
			}
		}
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(fp.Text)
	}
	return doc.WriteToBytes()
}

func (f *Fixture) stylesXML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", wordMLNamespace)

	styles := append([]FixtureStyle{{ID: "Normal", Name: "Normal"}}, f.Styles...)
	for _, s := range styles {
		style := root.CreateElement("w:style")
		style.CreateAttr("w:type", "paragraph")
		style.CreateAttr("w:styleId", s.ID)
		style.CreateElement("w:name").CreateAttr("w:val", s.Name)
	}
	return doc.WriteToBytes()
}

func (f *Fixture) numberingXML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("w:numbering")
	root.CreateAttr("xmlns:w", wordMLNamespace)

	for i, l := range f.Lists {
		abs := root.CreateElement("w:abstractNum")
		abs.CreateAttr("w:abstractNumId", strconv.Itoa(i+1))
		format := l.Format
		if format == "" {
			format = "decimal"
		}
		// Three levels is enough for any scenario nesting.
		for ilvl := 0; ilvl < 3; ilvl++ {
			lvl := abs.CreateElement("w:lvl")
			lvl.CreateAttr("w:ilvl", strconv.Itoa(ilvl))
			lvl.CreateElement("w:start").CreateAttr("w:val", "1")
			lvl.CreateElement("w:numFmt").CreateAttr("w:val", format)
			text := l.Text
			if ilvl > 0 || text == "" {
				if format == "bullet" {
					text = "•"
				} else {
					text = "%" + strconv.Itoa(ilvl+1) + "."
				}
			}
			lvl.CreateElement("w:lvlText").CreateAttr("w:val", text)
		}
	}
	for i := range f.Lists {
		num := root.CreateElement("w:num")
		num.CreateAttr("w:numId", strconv.Itoa(i+1))
		num.CreateElement("w:abstractNumId").CreateAttr("w:val", strconv.Itoa(i+1))
	}
	return doc.WriteToBytes()
}
