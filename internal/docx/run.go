package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Run is a transient view over one w:r element.
type Run struct {
	el *etree.Element
}

// Text returns the run's character data.
func (r *Run) Text() string {
	var b strings.Builder
	for _, t := range r.el.SelectElements("w:t") {
		b.WriteString(t.Text())
	}
	return b.String()
}

// rPr returns the run properties element, creating it as first child when
// asked to.
func (r *Run) rPr(create bool) *etree.Element {
	if el := r.el.SelectElement("w:rPr"); el != nil {
		return el
	}
	if !create {
		return nil
	}
	el := etree.NewElement("w:rPr")
	r.el.InsertChildAt(0, el)
	return el
}

// toggle reads an on/off run property like w:b or w:i. Presence without a
// w:val attribute means on.
func (r *Run) toggle(name string) bool {
	el := childOf(r.rPr(false), name, false)
	if el == nil {
		return false
	}
	return onOff(el.SelectAttrValue("w:val", "true"))
}

func (r *Run) setToggle(name string, on bool) {
	rPr := r.rPr(true)
	el := childOf(rPr, name, false)
	if on {
		if el == nil {
			el = rPr.CreateElement(name)
		}
		el.RemoveAttr("w:val")
		return
	}
	if el != nil {
		rPr.RemoveChild(el)
	}
}

// Bold reports whether the run is bold.
func (r *Run) Bold() bool { return r.toggle("w:b") }

// SetBold sets or clears bold.
func (r *Run) SetBold(on bool) { r.setToggle("w:b", on) }

// Italic reports whether the run is italic.
func (r *Run) Italic() bool { return r.toggle("w:i") }

// SetItalic sets or clears italic.
func (r *Run) SetItalic(on bool) { r.setToggle("w:i", on) }

// Underline reports whether the run carries any underline.
func (r *Run) Underline() bool {
	u := childOf(r.rPr(false), "w:u", false)
	if u == nil {
		return false
	}
	return u.SelectAttrValue("w:val", "single") != "none"
}

// SetUnderline sets single underline or removes it.
func (r *Run) SetUnderline(on bool) {
	rPr := r.rPr(true)
	u := childOf(rPr, "w:u", false)
	if on {
		if u == nil {
			u = rPr.CreateElement("w:u")
		}
		u.CreateAttr("w:val", "single")
		return
	}
	if u != nil {
		rPr.RemoveChild(u)
	}
}

// FontName returns the ASCII font name, or "".
func (r *Run) FontName() string {
	fonts := childOf(r.rPr(false), "w:rFonts", false)
	if fonts == nil {
		return ""
	}
	return fonts.SelectAttrValue("w:ascii", "")
}

// SetFontName sets the font for all script ranges of the run.
func (r *Run) SetFontName(name string) {
	fonts := childOf(r.rPr(true), "w:rFonts", true)
	fonts.CreateAttr("w:ascii", name)
	fonts.CreateAttr("w:hAnsi", name)
	fonts.CreateAttr("w:cs", name)
}

// FontSize returns the font size in points, or 0 when unset.
func (r *Run) FontSize() float64 {
	sz := childOf(r.rPr(false), "w:sz", false)
	if sz == nil {
		return 0
	}
	half, err := strconv.ParseFloat(sz.SelectAttrValue("w:val", ""), 64)
	if err != nil {
		return 0
	}
	return half / 2
}

// SetFontSize sets the font size in points.
func (r *Run) SetFontSize(points float64) {
	half := strconv.Itoa(int(points * 2))
	childOf(r.rPr(true), "w:sz", true).CreateAttr("w:val", half)
	childOf(r.rPr(true), "w:szCs", true).CreateAttr("w:val", half)
}

// FontColor returns the run color as an RRGGBB hex string, or "".
func (r *Run) FontColor() string {
	c := childOf(r.rPr(false), "w:color", false)
	if c == nil {
		return ""
	}
	v := c.SelectAttrValue("w:val", "")
	if v == "auto" {
		return ""
	}
	return strings.ToUpper(v)
}

// SetFontColor sets the run color from an RRGGBB hex string.
func (r *Run) SetFontColor(hex string) {
	childOf(r.rPr(true), "w:color", true).CreateAttr("w:val", strings.ToUpper(hex))
}

// firstRun returns the paragraph's tested run: the first run, which stands
// in for the whole paragraph in property matching.
func (p *Paragraph) firstRun() (*Run, bool) {
	runs := p.runElements()
	if len(runs) == 0 {
		return nil, false
	}
	return &Run{el: runs[0]}, true
}

// eachRun applies f to every run of the paragraph, OR-folding the changed
// results.
func (p *Paragraph) eachRun(f func(*Run) bool) bool {
	changed := false
	for _, r := range p.Runs() {
		if f(r) {
			changed = true
		}
	}
	return changed
}
