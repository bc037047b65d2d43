package docx

import (
	"fmt"
	"strings"

	"github.com/casedocs/redline/internal/rules"
)

// The property registry replaces the original system's runtime reflection
// over the host object model. Rule files address formatting attributes by
// the object-model paths they were authored against ("Range.Font.Bold",
// "LeftIndent", "Style"); the registry maps each known path to typed
// get/set closures over the paragraph view. Unknown paths are "not found"
// on read and "not settable" on write, never an error.

type accessor struct {
	get func(*Paragraph) (any, bool)
	set func(*Paragraph, any) error

	// canon normalizes a requested value into the representation get
	// returns, so the write-skip comparison in SetProperty sees like
	// against like (rule files say "center", the document reports the
	// alignment enum). Nil means the raw value already compares.
	canon func(*Paragraph, any) any
}

// colorIndexPalette maps the host object model's color index enum to
// RRGGBB values, as used by rules like {"Range.Font.ColorIndex": 6}.
var colorIndexPalette = map[int]string{
	1: "000000", 2: "0000FF", 3: "00FFFF", 4: "00FF00",
	5: "FF00FF", 6: "FF0000", 7: "FFFF00", 8: "FFFFFF",
	9: "000080", 10: "008080", 11: "008000", 12: "800080",
	13: "800000", 14: "808000", 15: "808080", 16: "C0C0C0",
}

var propertyRegistry = map[string]accessor{
	"Style": {
		get: func(p *Paragraph) (any, bool) {
			name := p.StyleName()
			return name, name != ""
		},
		set: func(p *Paragraph, v any) error {
			p.SetStyle(fmt.Sprint(v))
			return nil
		},
		canon: func(p *Paragraph, v any) any {
			// Rules may address a style by id; reads report the
			// display name.
			if p.doc != nil && p.doc.styles != nil {
				if name := p.doc.styles.nameOf(fmt.Sprint(v)); name != "" {
					return name
				}
			}
			return v
		},
	},
	"LeftIndent": {
		get: func(p *Paragraph) (any, bool) { return points(p.LeftIndent()) },
		set: setPoints((*Paragraph).SetLeftIndent),
	},
	"RightIndent": {
		get: func(p *Paragraph) (any, bool) { return points(p.RightIndent()) },
		set: setPoints((*Paragraph).SetRightIndent),
	},
	"FirstLineIndent": {
		get: func(p *Paragraph) (any, bool) { return points(p.FirstLineIndent()) },
		set: setPoints((*Paragraph).SetFirstLineIndent),
	},
	"SpaceBefore": {
		get: func(p *Paragraph) (any, bool) { return points(p.SpaceBefore()) },
		set: setPoints((*Paragraph).SetSpaceBefore),
	},
	"SpaceAfter": {
		get: func(p *Paragraph) (any, bool) { return points(p.SpaceAfter()) },
		set: setPoints((*Paragraph).SetSpaceAfter),
	},
	"LineSpacing": {
		get: func(p *Paragraph) (any, bool) { return points(p.LineSpacing()) },
		set: setPoints((*Paragraph).SetLineSpacing),
	},
	"Alignment": {
		get: func(p *Paragraph) (any, bool) { return p.Alignment(), true },
		set: func(p *Paragraph, v any) error {
			if name, ok := v.(string); ok {
				if a, ok := AlignmentNames[strings.ToLower(name)]; ok {
					p.SetAlignment(a)
					return nil
				}
				return fmt.Errorf("unknown alignment %q", name)
			}
			n, ok := rules.AsNumber(v)
			if !ok {
				return fmt.Errorf("alignment value %v is not a number or name", v)
			}
			p.SetAlignment(int(n))
			return nil
		},
		canon: func(_ *Paragraph, v any) any {
			if name, ok := v.(string); ok {
				if a, ok := AlignmentNames[strings.ToLower(name)]; ok {
					return a
				}
			}
			return v
		},
	},
	"NoSpaceBetweenParagraphsOfSameStyle": {
		get: func(p *Paragraph) (any, bool) { return p.ContextualSpacing(), true },
		set: func(p *Paragraph, v any) error {
			if rules.Truthy(v) {
				cs := childOf(p.pPr(true), "w:contextualSpacing", true)
				cs.RemoveAttr("w:val")
				return nil
			}
			p.clearContextualSpacing()
			return nil
		},
	},
	"Range.Font.Bold": {
		get: runGet(func(r *Run) any { return r.Bold() }),
		set: runSet(func(r *Run, v any) { r.SetBold(rules.Truthy(v)) }),
	},
	"Range.Font.Italic": {
		get: runGet(func(r *Run) any { return r.Italic() }),
		set: runSet(func(r *Run, v any) { r.SetItalic(rules.Truthy(v)) }),
	},
	"Range.Font.Underline": {
		get: runGet(func(r *Run) any { return r.Underline() }),
		set: runSet(func(r *Run, v any) { r.SetUnderline(rules.Truthy(v)) }),
	},
	"Range.Font.Name": {
		get: runGet(func(r *Run) any { return r.FontName() }),
		set: runSet(func(r *Run, v any) { r.SetFontName(fmt.Sprint(v)) }),
	},
	"Range.Font.Size": {
		get: runGet(func(r *Run) any { return r.FontSize() }),
		set: func(p *Paragraph, v any) error {
			n, ok := rules.AsNumber(v)
			if !ok {
				return fmt.Errorf("font size %v is not a number", v)
			}
			p.eachRun(func(r *Run) bool { r.SetFontSize(n); return true })
			return nil
		},
	},
	"Range.Font.Color": {
		get: runGet(func(r *Run) any { return r.FontColor() }),
		set: runSet(func(r *Run, v any) { r.SetFontColor(fmt.Sprint(v)) }),
	},
	"Range.Font.ColorIndex": {
		get: func(p *Paragraph) (any, bool) {
			r, ok := p.firstRun()
			if !ok {
				return nil, false
			}
			hex := r.FontColor()
			for idx, h := range colorIndexPalette {
				if h == hex {
					return idx, true
				}
			}
			return 0, hex == ""
		},
		set: func(p *Paragraph, v any) error {
			n, ok := rules.AsNumber(v)
			if !ok {
				return fmt.Errorf("color index %v is not a number", v)
			}
			hex, ok := colorIndexPalette[int(n)]
			if !ok {
				return fmt.Errorf("unknown color index %d", int(n))
			}
			p.eachRun(func(r *Run) bool { r.SetFontColor(hex); return true })
			return nil
		},
	},
}

func points(v float64, ok bool) (any, bool) { return v, ok }

// runGet reads a font attribute from the paragraph's tested (first) run.
func runGet(f func(*Run) any) func(*Paragraph) (any, bool) {
	return func(p *Paragraph) (any, bool) {
		r, ok := p.firstRun()
		if !ok {
			return nil, false
		}
		return f(r), true
	}
}

// runSet applies a font attribute to every run of the paragraph.
func runSet(f func(*Run, any)) func(*Paragraph, any) error {
	return func(p *Paragraph, v any) error {
		p.eachRun(func(r *Run) bool { f(r, v); return true })
		return nil
	}
}

func setPoints(f func(*Paragraph, float64)) func(*Paragraph, any) error {
	return func(p *Paragraph, v any) error {
		n, ok := rules.AsNumber(v)
		if !ok {
			return fmt.Errorf("value %v is not a number", v)
		}
		f(p, n)
		return nil
	}
}

// GetProperty resolves a property path on the paragraph. The false return
// is the "not found" sentinel: unknown paths and unreadable values degrade
// to it rather than erroring.
func (p *Paragraph) GetProperty(path rules.PropertyPath) (any, bool) {
	acc, ok := propertyRegistry[string(path)]
	if !ok {
		return nil, false
	}
	return acc.get(p)
}

// SetProperty writes a property if its current value differs from the
// requested one (numeric tolerance and boolean normalization per
// rules.EqualValues). Returns whether a write occurred. Unknown paths are
// not settable and report (false, false).
func (p *Paragraph) SetProperty(path rules.PropertyPath, value any) (changed, settable bool, err error) {
	acc, ok := propertyRegistry[string(path)]
	if !ok {
		return false, false, nil
	}
	want := value
	if acc.canon != nil {
		want = acc.canon(p, value)
	}
	if current, ok := acc.get(p); ok && rules.EqualValues(want, current) {
		return false, true, nil
	}
	if err := acc.set(p, value); err != nil {
		return false, true, err
	}
	return true, true, nil
}
