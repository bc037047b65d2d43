package docx

import (
	"fmt"
	"regexp"
)

// findPattern compiles a literal search pattern with the case and
// whole-word semantics the rule corpus expects. Whole-word matching uses
// word-boundary semantics; case-insensitivity is the default.
func findPattern(literal string, caseSensitive, wholeWord bool) (*regexp.Regexp, error) {
	expr := regexp.QuoteMeta(literal)
	if wholeWord {
		expr = `\b` + expr + `\b`
	}
	if !caseSensitive {
		expr = `(?i)` + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling search pattern %q: %w", literal, err)
	}
	return re, nil
}

// ReplaceText performs an in-place find/replace restricted to this
// paragraph. Returns whether the text changed. The replacement collapses
// the paragraph onto its first run's formatting, which is the same
// trade-off the host object model's Find.Execute makes for mixed-format
// matches.
func (p *Paragraph) ReplaceText(pattern, replacement string, caseSensitive, wholeWord bool) (bool, error) {
	if pattern == "" {
		return false, nil
	}
	re, err := findPattern(pattern, caseSensitive, wholeWord)
	if err != nil {
		return false, err
	}
	text := p.Text()
	next := re.ReplaceAllLiteralString(text, replacement)
	if next == text {
		return false, nil
	}
	p.SetText(next)
	return true, nil
}

// ReplaceAll performs one whole-document replace pass over every
// paragraph, table cells included. Returns whether anything changed.
func (d *Document) ReplaceAll(pattern, replacement string, caseSensitive, wholeWord bool) (bool, error) {
	if pattern == "" {
		return false, nil
	}
	re, err := findPattern(pattern, caseSensitive, wholeWord)
	if err != nil {
		return false, err
	}
	changed := false
	for _, p := range d.Paragraphs() {
		text := p.Text()
		next := re.ReplaceAllLiteralString(text, replacement)
		if next != text {
			p.SetText(next)
			changed = true
		}
	}
	return changed, nil
}
