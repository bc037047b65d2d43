package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// numberingTable holds the parsed word/numbering.xml: concrete num ids
// mapped to abstract definitions, and the per-level formats needed to
// render the marker string a word processor would display.
type numberingTable struct {
	numToAbstract map[int]int
	levels        map[int]map[int]numberingLevel // abstractNumId -> ilvl -> level
}

type numberingLevel struct {
	start   int
	numFmt  string // decimal, lowerLetter, upperLetter, lowerRoman, upperRoman, bullet, none
	lvlText string // e.g. "%1." or a literal bullet glyph
}

func parseNumbering(data []byte) (*numberingTable, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	t := &numberingTable{
		numToAbstract: make(map[int]int),
		levels:        make(map[int]map[int]numberingLevel),
	}
	root := doc.Root()
	if root == nil {
		return t, nil
	}

	for _, abs := range root.SelectElements("w:abstractNum") {
		absID, err := strconv.Atoi(abs.SelectAttrValue("w:abstractNumId", ""))
		if err != nil {
			continue
		}
		lvls := make(map[int]numberingLevel)
		for _, lvl := range abs.SelectElements("w:lvl") {
			ilvl, err := strconv.Atoi(lvl.SelectAttrValue("w:ilvl", ""))
			if err != nil {
				continue
			}
			nl := numberingLevel{start: 1, numFmt: "decimal", lvlText: "%" + strconv.Itoa(ilvl+1) + "."}
			if s := childOf(lvl, "w:start", false); s != nil {
				if n, err := strconv.Atoi(s.SelectAttrValue("w:val", "")); err == nil {
					nl.start = n
				}
			}
			if f := childOf(lvl, "w:numFmt", false); f != nil {
				nl.numFmt = f.SelectAttrValue("w:val", nl.numFmt)
			}
			if lt := childOf(lvl, "w:lvlText", false); lt != nil {
				nl.lvlText = lt.SelectAttrValue("w:val", nl.lvlText)
			}
			lvls[ilvl] = nl
		}
		t.levels[absID] = lvls
	}

	for _, num := range root.SelectElements("w:num") {
		numID, err := strconv.Atoi(num.SelectAttrValue("w:numId", ""))
		if err != nil {
			continue
		}
		if a := childOf(num, "w:abstractNumId", false); a != nil {
			if absID, err := strconv.Atoi(a.SelectAttrValue("w:val", "")); err == nil {
				t.numToAbstract[numID] = absID
			}
		}
	}
	return t, nil
}

// numbering returns the paragraph's effective (numId, ilvl), consulting the
// paragraph's own numPr first and then the style chain. numId 0 means the
// numbering is explicitly switched off.
func (p *Paragraph) numberingRef() (numID, ilvl int, ok bool) {
	if pr := childOf(p.pPr(false), "w:numPr", false); pr != nil {
		if id := childOf(pr, "w:numId", false); id != nil {
			n, err := strconv.Atoi(id.SelectAttrValue("w:val", ""))
			if err != nil || n == 0 {
				return 0, 0, false
			}
			if lv := childOf(pr, "w:ilvl", false); lv != nil {
				if l, err := strconv.Atoi(lv.SelectAttrValue("w:val", "")); err == nil {
					ilvl = l
				}
			}
			return n, ilvl, true
		}
	}
	if p.doc != nil && p.doc.styles != nil {
		if n, l, ok := p.doc.styles.numberingOf(p.StyleID()); ok {
			return n, l, true
		}
	}
	return 0, 0, false
}

// listCounter renders markers for one enumeration pass. Counters follow
// document order: a deeper level resets when a shallower one advances.
type listCounter struct {
	table    *numberingTable
	counters map[int][]int // numId -> per-level counters
}

const maxListLevels = 9

func newListCounter(t *numberingTable) *listCounter {
	return &listCounter{table: t, counters: make(map[int][]int)}
}

// next advances the counter for (numId, ilvl) and renders the marker.
func (c *listCounter) next(numID, ilvl int) (string, bool) {
	if c.table == nil {
		return "", false
	}
	absID, ok := c.table.numToAbstract[numID]
	if !ok {
		return "", false
	}
	lvls := c.table.levels[absID]
	lvl, ok := lvls[ilvl]
	if !ok {
		return "", false
	}

	counts := c.counters[numID]
	if counts == nil {
		counts = make([]int, maxListLevels)
		for i := range counts {
			if l, ok := lvls[i]; ok {
				counts[i] = l.start - 1
			}
		}
		c.counters[numID] = counts
	}
	if ilvl < maxListLevels {
		counts[ilvl]++
		for i := ilvl + 1; i < maxListLevels; i++ {
			if l, ok := lvls[i]; ok {
				counts[i] = l.start - 1
			} else {
				counts[i] = 0
			}
		}
	}

	if lvl.numFmt == "bullet" {
		return lvl.lvlText, true
	}
	if lvl.numFmt == "none" {
		return strings.ReplaceAll(lvl.lvlText, "%", ""), true
	}

	marker := lvl.lvlText
	for i := 0; i < maxListLevels; i++ {
		ph := "%" + strconv.Itoa(i+1)
		if !strings.Contains(marker, ph) {
			continue
		}
		fmtName := "decimal"
		if l, ok := lvls[i]; ok {
			fmtName = l.numFmt
		}
		marker = strings.ReplaceAll(marker, ph, formatOrdinal(counts[i], fmtName))
	}
	return marker, true
}

// renderMarkers walks the enumeration once, stamping list membership and
// rendered markers onto the views.
func (d *Document) renderMarkers(paras []*Paragraph) {
	c := newListCounter(d.numbering)
	for _, p := range paras {
		numID, ilvl, ok := p.numberingRef()
		if !ok {
			continue
		}
		marker, ok := c.next(numID, ilvl)
		if !ok {
			continue
		}
		p.isList = true
		p.marker = marker
	}
}

// formatOrdinal renders a counter value in the given numbering format.
func formatOrdinal(n int, numFmt string) string {
	if n < 1 {
		n = 1
	}
	switch numFmt {
	case "lowerLetter":
		return alphaOrdinal(n, 'a')
	case "upperLetter":
		return alphaOrdinal(n, 'A')
	case "lowerRoman":
		return strings.ToLower(roman(n))
	case "upperRoman":
		return roman(n)
	}
	return strconv.Itoa(n)
}

// alphaOrdinal counts a..z, aa..zz, the way word processors do (27 = "aa",
// not "ab").
func alphaOrdinal(n int, base rune) string {
	letter := string(base + rune((n-1)%26))
	return strings.Repeat(letter, (n-1)/26+1)
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return b.String()
}
