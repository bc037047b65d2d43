package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Measurement conversions. WordprocessingML stores indents and spacing in
// twips (twentieths of a point), font sizes in half-points, and line
// spacing in 240ths of a line.
const (
	twipsPerPoint  = 20
	lineUnitsPerLn = 240

	// PointsPerInch converts the rule corpus's inch-valued fields.
	PointsPerInch = 72
)

// Paragraph is a transient view over one w:p element. Views are rebuilt on
// every enumeration; holding one across a save or a later enumeration is a
// bug in the caller.
type Paragraph struct {
	doc *Document
	el  *etree.Element

	// marker is the rendered list string ("A.", "1.", "•"), filled in
	// during enumeration for paragraphs that belong to an automatic list.
	marker string
	isList bool
}

// Text returns the concatenated run text of the paragraph.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, t := range p.el.FindElements(".//w:t") {
		b.WriteString(t.Text())
	}
	return b.String()
}

// IsListItem reports whether the paragraph belongs to an automatic list.
func (p *Paragraph) IsListItem() bool { return p.isList }

// ListMarker returns the rendered auto-number or bullet string, or "" when
// the paragraph is not a list item.
func (p *Paragraph) ListMarker() string { return p.marker }

// SetText replaces the paragraph's entire text. The first run keeps its
// formatting and receives the new text; remaining runs are removed. An
// empty paragraph gains a bare run.
func (p *Paragraph) SetText(s string) {
	runs := p.runElements()
	if len(runs) == 0 {
		r := p.el.CreateElement("w:r")
		setRunText(r, s)
		return
	}
	setRunText(runs[0], s)
	for _, r := range runs[1:] {
		p.el.RemoveChild(r)
	}
}

// runElements returns the w:r children, including those nested in
// hyperlinks and similar run containers.
func (p *Paragraph) runElements() []*etree.Element {
	var out []*etree.Element
	for _, el := range p.el.ChildElements() {
		switch el.Tag {
		case "r":
			out = append(out, el)
		case "hyperlink", "ins", "smartTag":
			out = append(out, el.SelectElements("w:r")...)
		}
	}
	return out
}

// Runs returns run views in document order.
func (p *Paragraph) Runs() []*Run {
	els := p.runElements()
	runs := make([]*Run, 0, len(els))
	for _, el := range els {
		runs = append(runs, &Run{el: el})
	}
	return runs
}

func setRunText(r *etree.Element, s string) {
	for _, t := range r.SelectElements("w:t") {
		r.RemoveChild(t)
	}
	t := r.CreateElement("w:t")
	t.SetText(s)
	if s != strings.TrimSpace(s) {
		t.CreateAttr("xml:space", "preserve")
	}
}

// pPr returns the paragraph properties element, creating it (as first
// child, as the schema requires) when create is set.
func (p *Paragraph) pPr(create bool) *etree.Element {
	if el := p.el.SelectElement("w:pPr"); el != nil {
		return el
	}
	if !create {
		return nil
	}
	el := etree.NewElement("w:pPr")
	p.el.InsertChildAt(0, el)
	return el
}

// childOf returns (and optionally creates) a named child of parent.
func childOf(parent *etree.Element, name string, create bool) *etree.Element {
	if parent == nil {
		return nil
	}
	if el := parent.SelectElement(name); el != nil {
		return el
	}
	if !create {
		return nil
	}
	return parent.CreateElement(name)
}

// twipAttr reads a twip-valued attribute as points.
func twipAttr(el *etree.Element, attr string) (float64, bool) {
	if el == nil {
		return 0, false
	}
	v := el.SelectAttrValue(attr, "")
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return n / twipsPerPoint, true
}

func setTwipAttr(el *etree.Element, attr string, points float64) {
	el.CreateAttr(attr, strconv.Itoa(int(points*twipsPerPoint)))
}

// StyleID returns the paragraph style id (w:pStyle), or "".
func (p *Paragraph) StyleID() string {
	if ps := childOf(p.pPr(false), "w:pStyle", false); ps != nil {
		return ps.SelectAttrValue("w:val", "")
	}
	return ""
}

// StyleName resolves the style id to its display name via the styles part.
// Falls back to the raw id when the part is missing.
func (p *Paragraph) StyleName() string {
	id := p.StyleID()
	if id == "" {
		return ""
	}
	if p.doc != nil && p.doc.styles != nil {
		if name := p.doc.styles.nameOf(id); name != "" {
			return name
		}
	}
	return id
}

// SetStyle sets the paragraph style by display name or id.
func (p *Paragraph) SetStyle(name string) {
	id := name
	if p.doc != nil && p.doc.styles != nil {
		if resolved := p.doc.styles.idOf(name); resolved != "" {
			id = resolved
		}
	}
	ps := childOf(p.pPr(true), "w:pStyle", true)
	ps.CreateAttr("w:val", id)
}

// LeftIndent returns the left indent in points.
func (p *Paragraph) LeftIndent() (float64, bool) {
	ind := childOf(p.pPr(false), "w:ind", false)
	if v, ok := twipAttr(ind, "w:left"); ok {
		return v, true
	}
	return twipAttr(ind, "w:start")
}

// SetLeftIndent sets the left indent in points.
func (p *Paragraph) SetLeftIndent(points float64) {
	ind := childOf(p.pPr(true), "w:ind", true)
	setTwipAttr(ind, "w:left", points)
}

// RightIndent returns the right indent in points.
func (p *Paragraph) RightIndent() (float64, bool) {
	ind := childOf(p.pPr(false), "w:ind", false)
	if v, ok := twipAttr(ind, "w:right"); ok {
		return v, true
	}
	return twipAttr(ind, "w:end")
}

// SetRightIndent sets the right indent in points.
func (p *Paragraph) SetRightIndent(points float64) {
	ind := childOf(p.pPr(true), "w:ind", true)
	setTwipAttr(ind, "w:right", points)
}

// FirstLineIndent returns the first-line indent in points; hanging indents
// are negative, matching the host object model convention.
func (p *Paragraph) FirstLineIndent() (float64, bool) {
	ind := childOf(p.pPr(false), "w:ind", false)
	if v, ok := twipAttr(ind, "w:hanging"); ok {
		return -v, true
	}
	return twipAttr(ind, "w:firstLine")
}

// SetFirstLineIndent sets the first-line indent in points. Negative values
// are stored as hanging indents.
func (p *Paragraph) SetFirstLineIndent(points float64) {
	ind := childOf(p.pPr(true), "w:ind", true)
	if points < 0 {
		ind.RemoveAttr("w:firstLine")
		setTwipAttr(ind, "w:hanging", -points)
		return
	}
	ind.RemoveAttr("w:hanging")
	setTwipAttr(ind, "w:firstLine", points)
}

// SpaceBefore returns the spacing before the paragraph in points.
func (p *Paragraph) SpaceBefore() (float64, bool) {
	return twipAttr(childOf(p.pPr(false), "w:spacing", false), "w:before")
}

// SetSpaceBefore sets spacing before in points. Contextual spacing is
// cleared so the explicit value actually renders between same-style
// paragraphs.
func (p *Paragraph) SetSpaceBefore(points float64) {
	sp := childOf(p.pPr(true), "w:spacing", true)
	setTwipAttr(sp, "w:before", points)
	p.clearContextualSpacing()
}

// SpaceAfter returns the spacing after the paragraph in points.
func (p *Paragraph) SpaceAfter() (float64, bool) {
	return twipAttr(childOf(p.pPr(false), "w:spacing", false), "w:after")
}

// SetSpaceAfter sets spacing after in points.
func (p *Paragraph) SetSpaceAfter(points float64) {
	sp := childOf(p.pPr(true), "w:spacing", true)
	setTwipAttr(sp, "w:after", points)
	p.clearContextualSpacing()
}

func (p *Paragraph) clearContextualSpacing() {
	pPr := p.pPr(false)
	if cs := childOf(pPr, "w:contextualSpacing", false); cs != nil {
		pPr.RemoveChild(cs)
	}
}

// ContextualSpacing reports whether same-style spacing suppression is on.
func (p *Paragraph) ContextualSpacing() bool {
	cs := childOf(p.pPr(false), "w:contextualSpacing", false)
	if cs == nil {
		return false
	}
	return onOff(cs.SelectAttrValue("w:val", "true"))
}

// LineSpacing returns the line spacing in points. Auto-rule values (240ths
// of a line) are converted assuming a 12pt line, exact/atLeast values are
// twips.
func (p *Paragraph) LineSpacing() (float64, bool) {
	sp := childOf(p.pPr(false), "w:spacing", false)
	if sp == nil {
		return 0, false
	}
	v := sp.SelectAttrValue("w:line", "")
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	if sp.SelectAttrValue("w:lineRule", "auto") == "auto" {
		return n / lineUnitsPerLn * 12, true
	}
	return n / twipsPerPoint, true
}

// SetLineSpacing sets exact line spacing in points.
func (p *Paragraph) SetLineSpacing(points float64) {
	sp := childOf(p.pPr(true), "w:spacing", true)
	sp.CreateAttr("w:lineRule", "exact")
	setTwipAttr(sp, "w:line", points)
}

// Alignment values mirror the host object model enum the rule corpus uses.
const (
	AlignLeft    = 0
	AlignCenter  = 1
	AlignRight   = 2
	AlignJustify = 3
)

// AlignmentNames maps rule-file alignment names to enum values.
var AlignmentNames = map[string]int{
	"left":    AlignLeft,
	"center":  AlignCenter,
	"right":   AlignRight,
	"justify": AlignJustify,
}

var jcValues = map[int]string{
	AlignLeft:    "left",
	AlignCenter:  "center",
	AlignRight:   "right",
	AlignJustify: "both",
}

// Alignment returns the paragraph alignment enum. Unaligned paragraphs
// report left.
func (p *Paragraph) Alignment() int {
	jc := childOf(p.pPr(false), "w:jc", false)
	if jc == nil {
		return AlignLeft
	}
	switch jc.SelectAttrValue("w:val", "") {
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	case "both", "justify", "distribute":
		return AlignJustify
	}
	return AlignLeft
}

// SetAlignment sets the paragraph alignment from the enum value.
func (p *Paragraph) SetAlignment(align int) {
	val, ok := jcValues[align]
	if !ok {
		val = "left"
	}
	jc := childOf(p.pPr(true), "w:jc", true)
	jc.CreateAttr("w:val", val)
}

// AlignmentName returns the rule-file name for the paragraph alignment.
func (p *Paragraph) AlignmentName() string {
	switch p.Alignment() {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	}
	return "left"
}

// onOff interprets the OOXML boolean attribute forms.
func onOff(v string) bool {
	switch v {
	case "0", "false", "off", "none":
		return false
	}
	return true
}
