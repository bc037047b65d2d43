package engine

import (
	"fmt"
	"log/slog"

	"github.com/casedocs/redline/internal/docx"
	"github.com/casedocs/redline/internal/rules"
)

// MutableParagraph extends the read-only view with the mutations actions
// need. Every mutation reports whether it actually changed the document;
// the engine OR-folds those results into the run's changed flag.
type MutableParagraph interface {
	ParagraphView
	SetProperty(path rules.PropertyPath, value any) (changed, settable bool, err error)
	ReplaceText(pattern, replacement string, caseSensitive, wholeWord bool) (bool, error)
	SetText(s string)
}

// applyAction applies one matched rule's action to one paragraph.
// The returned error marks a rule-application failure the caller logs and
// counts; it never aborts the pass.
func applyAction(rule rules.Rule, p MutableParagraph) (bool, error) {
	act := rule.Action
	changed := false

	switch act.Type {
	case rules.ActionFormat:
		changed = applyFormatting(rule.Name, p, act.Formatting)
	case rules.ActionReplace:
		if act.Replacement == nil {
			return false, fmt.Errorf("replace action has no replacement")
		}
		return applyReplace(rule, p, *act.Replacement)
	case rules.ActionCycle:
		return applyCycle(rule, p)
	default:
		return false, fmt.Errorf("unknown action type %q", act.Type)
	}

	// The original corpus allows a format rule to carry a replacement too.
	if act.Type == rules.ActionFormat && act.Replacement != nil {
		repChanged, err := applyReplace(rule, p, *act.Replacement)
		if err != nil {
			return changed, err
		}
		changed = changed || repChanged
	}
	return changed, nil
}

// applyFormatting funnels every named field and every dynamic property
// through the paragraph's property accessor, converting rule-file units to
// points on the way. Per-property failures are logged and skipped; the
// remaining properties still apply.
func applyFormatting(ruleName string, p MutableParagraph, f *rules.Formatting) bool {
	if f.Empty() {
		return false
	}
	changed := false
	set := func(path rules.PropertyPath, value any) {
		c, settable, err := p.SetProperty(path, value)
		if err != nil {
			slog.Warn("failed to set property", "rule", ruleName, "path", path, "error", err)
			return
		}
		if !settable {
			slog.Warn("property not settable", "rule", ruleName, "path", path)
			return
		}
		changed = changed || c
	}

	for path, value := range f.DynamicProperties {
		set(rules.PropertyPath(path), value)
	}

	if f.Style != nil {
		set("Style", *f.Style)
	}
	if f.LeftIndent != nil {
		set("LeftIndent", *f.LeftIndent*docx.PointsPerInch)
	}
	if f.RightIndent != nil {
		set("RightIndent", *f.RightIndent*docx.PointsPerInch)
	}
	if f.FirstLineIndent != nil {
		set("FirstLineIndent", *f.FirstLineIndent*docx.PointsPerInch)
	}
	if f.SpaceBefore != nil {
		set("SpaceBefore", *f.SpaceBefore)
	}
	if f.SpaceAfter != nil {
		set("SpaceAfter", *f.SpaceAfter)
	}
	if f.LineSpacing != nil {
		set("LineSpacing", *f.LineSpacing)
	}
	if f.Alignment != nil {
		set("Alignment", *f.Alignment)
	}
	if f.FontName != nil {
		set("Range.Font.Name", *f.FontName)
	}
	if f.FontSize != nil {
		set("Range.Font.Size", *f.FontSize)
	}
	if f.FontBold != nil {
		set("Range.Font.Bold", *f.FontBold)
	}
	if f.FontItalic != nil {
		set("Range.Font.Italic", *f.FontItalic)
	}
	if f.FontColor != nil {
		set("Range.Font.Color", *f.FontColor)
	}
	return changed
}

// applyReplace does an in-paragraph find/replace of the trigger pattern.
// Regex triggers skip replacement: the search side would need the regex
// dialect and the corpus never relied on it, so the limitation is kept and
// logged.
func applyReplace(rule rules.Rule, p MutableParagraph, replacement string) (bool, error) {
	trig := rule.Trigger
	if trig.MatchType == rules.MatchRegex {
		slog.Info("skipping text replacement for regex rule", "rule", rule.Name)
		return false, nil
	}
	return p.ReplaceText(trig.Pattern, replacement, trig.CaseSensitive, trig.WholeWord)
}
