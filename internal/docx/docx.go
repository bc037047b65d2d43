// Package docx is the document model adapter: it exposes a DOCX package
// (ZIP of WordprocessingML XML) as an ordered sequence of paragraph views
// and a generic path-based property accessor over them.
//
// Only the parts the rule engine touches are parsed: word/document.xml
// (always), word/numbering.xml and word/styles.xml (when present). Every
// other ZIP entry passes through byte-for-byte on save, so saving a document
// the engine did not change reproduces the original part contents.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
)

const (
	documentPart  = "word/document.xml"
	numberingPart = "word/numbering.xml"
	stylesPart    = "word/styles.xml"
)

// part is one ZIP entry, kept in archive order.
type part struct {
	name string
	data []byte
}

// Document is an open DOCX package. It is not safe for concurrent use;
// the engine is single-threaded per document.
type Document struct {
	path      string
	parts     []part
	xml       *etree.Document
	numbering *numberingTable
	styles    *styleTable
}

// Open reads a DOCX package into memory.
func Open(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer zr.Close()

	d := &Document{path: path}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading %s from %s: %w", f.Name, path, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s from %s: %w", f.Name, path, err)
		}
		d.parts = append(d.parts, part{name: f.Name, data: data})
	}

	body, ok := d.part(documentPart)
	if !ok {
		return nil, fmt.Errorf("%s is not a DOCX package: missing %s", path, documentPart)
	}
	d.xml = etree.NewDocument()
	if err := d.xml.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", documentPart, err)
	}

	if data, ok := d.part(numberingPart); ok {
		num, err := parseNumbering(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", numberingPart, err)
		}
		d.numbering = num
	}
	if data, ok := d.part(stylesPart); ok {
		styles, err := parseStyles(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", stylesPart, err)
		}
		d.styles = styles
	}
	return d, nil
}

// Path returns the file the document was opened from.
func (d *Document) Path() string { return d.path }

func (d *Document) part(name string) ([]byte, bool) {
	for _, p := range d.parts {
		if p.name == name {
			return p.data, true
		}
	}
	return nil, false
}

// Bytes serializes the package, substituting the (possibly mutated)
// document part and passing every other entry through unchanged.
func (d *Document) Bytes() ([]byte, error) {
	docXML, err := d.xml.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", documentPart, err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range d.parts {
		data := p.data
		if p.name == documentPart {
			data = docXML
		}
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", p.name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the serialized package to path with 0644 permissions.
func (d *Document) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// body returns the w:body element of the document part.
func (d *Document) body() *etree.Element {
	root := d.xml.Root()
	if root == nil {
		return nil
	}
	return root.SelectElement("w:body")
}

// Paragraphs enumerates paragraph views in the engine's canonical order:
// body paragraphs first, then each table's cell paragraphs, recursing into
// nested tables. Views are rebuilt on every call; callers must not cache
// them across mutations. List markers are rendered during enumeration so
// each view carries the numbering state of the document as it stands now.
func (d *Document) Paragraphs() []*Paragraph {
	body := d.body()
	if body == nil {
		return nil
	}

	var paras []*Paragraph
	var tables []*etree.Element
	for _, el := range body.ChildElements() {
		switch el.Tag {
		case "p":
			paras = append(paras, &Paragraph{doc: d, el: el})
		case "tbl":
			tables = append(tables, el)
		}
	}
	for _, tbl := range tables {
		paras = append(paras, d.tableParagraphs(tbl)...)
	}

	d.renderMarkers(paras)
	return paras
}

// tableParagraphs collects cell paragraphs row by row, cell by cell.
// A nested table's paragraphs follow its enclosing cell's own paragraphs.
func (d *Document) tableParagraphs(tbl *etree.Element) []*Paragraph {
	var paras []*Paragraph
	for _, row := range tbl.SelectElements("w:tr") {
		for _, cell := range row.SelectElements("w:tc") {
			var nested []*etree.Element
			for _, el := range cell.ChildElements() {
				switch el.Tag {
				case "p":
					paras = append(paras, &Paragraph{doc: d, el: el})
				case "tbl":
					nested = append(nested, el)
				}
			}
			for _, inner := range nested {
				paras = append(paras, d.tableParagraphs(inner)...)
			}
		}
	}
	return paras
}
