package docx

import (
	"strconv"

	"github.com/beevik/etree"
)

// styleTable resolves style ids to display names and carries style-level
// numbering so list detection also covers list styles applied via pStyle.
type styleTable struct {
	names   map[string]string // style id -> display name
	ids     map[string]string // display name -> style id
	numRefs map[string]styleNumRef
	basedOn map[string]string
}

type styleNumRef struct {
	numID int
	ilvl  int
}

func parseStyles(data []byte) (*styleTable, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	t := &styleTable{
		names:   make(map[string]string),
		ids:     make(map[string]string),
		numRefs: make(map[string]styleNumRef),
		basedOn: make(map[string]string),
	}
	root := doc.Root()
	if root == nil {
		return t, nil
	}
	for _, style := range root.SelectElements("w:style") {
		id := style.SelectAttrValue("w:styleId", "")
		if id == "" {
			continue
		}
		if nameEl := childOf(style, "w:name", false); nameEl != nil {
			name := nameEl.SelectAttrValue("w:val", "")
			if name != "" {
				t.names[id] = name
				t.ids[name] = id
			}
		}
		if b := childOf(style, "w:basedOn", false); b != nil {
			t.basedOn[id] = b.SelectAttrValue("w:val", "")
		}
		if pPr := childOf(style, "w:pPr", false); pPr != nil {
			if numPr := childOf(pPr, "w:numPr", false); numPr != nil {
				ref := styleNumRef{}
				if idEl := childOf(numPr, "w:numId", false); idEl != nil {
					if n, err := strconv.Atoi(idEl.SelectAttrValue("w:val", "")); err == nil {
						ref.numID = n
					}
				}
				if lv := childOf(numPr, "w:ilvl", false); lv != nil {
					if l, err := strconv.Atoi(lv.SelectAttrValue("w:val", "")); err == nil {
						ref.ilvl = l
					}
				}
				if ref.numID > 0 {
					t.numRefs[id] = ref
				}
			}
		}
	}
	return t, nil
}

func (t *styleTable) nameOf(id string) string { return t.names[id] }
func (t *styleTable) idOf(name string) string { return t.ids[name] }

// numberingOf walks the basedOn chain looking for style-level numbering.
// The chain is capped to guard against cyclic style definitions.
func (t *styleTable) numberingOf(styleID string) (numID, ilvl int, ok bool) {
	for depth := 0; styleID != "" && depth < 16; depth++ {
		if ref, found := t.numRefs[styleID]; found {
			return ref.numID, ref.ilvl, true
		}
		styleID = t.basedOn[styleID]
	}
	return 0, 0, false
}
