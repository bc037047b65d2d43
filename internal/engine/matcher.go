package engine

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/casedocs/redline/internal/rules"
)

// regexTimeout bounds user-supplied pattern evaluation. Rule files are
// untrusted input and regexp2 backtracks.
const regexTimeout = time.Second

// ParagraphView is what the matcher needs to know about a paragraph. It is
// read-only here: matching never has side effects.
type ParagraphView interface {
	Text() string
	IsListItem() bool
	ListMarker() string
	GetProperty(path rules.PropertyPath) (any, bool)
}

// Match reports whether the rule's trigger is satisfied by the paragraph.
//
// The text predicate is evaluated against two candidates: the raw text,
// and the decorated text (list marker + " " + raw text) when the paragraph
// has a marker. First success wins. Regex triggers test only the raw text;
// combining auto-number decoration with regex mode would silently change
// which existing rules match, so the asymmetry is kept.
//
// The remaining trigger fields are conjunctive: a set is_list must agree
// with the paragraph's list membership, a list_string_pattern must match
// the marker of a list paragraph, and every property_match path must
// resolve to the expected value. Any failing or missing property is a
// non-match, never an error.
func Match(rule rules.Rule, p ParagraphView) bool {
	trig := rule.Trigger
	text := rules.NormalizeText(p.Text())

	if !matchText(trig, text, decorate(p, text)) {
		return false
	}

	if trig.IsList != nil && *trig.IsList != p.IsListItem() {
		return false
	}

	if trig.ListStringPattern != "" {
		if !p.IsListItem() {
			return false
		}
		if !matchRegex(trig.ListStringPattern, p.ListMarker(), true, rule.Name) {
			return false
		}
	}

	for path, expected := range trig.PropertyMatch {
		actual, ok := p.GetProperty(rules.PropertyPath(path))
		if !ok || !rules.EqualValues(expected, actual) {
			return false
		}
	}
	return true
}

// decorate prepends the rendered list marker, the way the document shows
// the paragraph to a reader. Returns "" when there is no marker.
func decorate(p ParagraphView, text string) string {
	if !p.IsListItem() || p.ListMarker() == "" {
		return ""
	}
	return strings.TrimSpace(p.ListMarker() + " " + text)
}

func matchText(trig rules.Trigger, raw, decorated string) bool {
	switch trig.MatchType {
	case rules.MatchRegex:
		// Raw text only; see Match.
		return matchRegex(trig.Pattern, raw, trig.CaseSensitive, "")
	case rules.MatchStartsWith:
		if matchStartsWith(trig, raw) {
			return true
		}
		return decorated != "" && matchStartsWith(trig, decorated)
	default: // contains
		if matchContains(trig, raw) {
			return true
		}
		return decorated != "" && matchContains(trig, decorated)
	}
}

func matchStartsWith(trig rules.Trigger, text string) bool {
	text = strings.TrimLeft(text, " \t")
	if trig.CaseSensitive {
		return strings.HasPrefix(text, trig.Pattern)
	}
	return strings.HasPrefix(rules.Fold(text), rules.Fold(trig.Pattern))
}

func matchContains(trig rules.Trigger, text string) bool {
	if trig.WholeWord {
		return matchWholeWord(trig.Pattern, text, trig.CaseSensitive)
	}
	if trig.CaseSensitive {
		return strings.Contains(text, trig.Pattern)
	}
	return strings.Contains(rules.Fold(text), rules.Fold(trig.Pattern))
}

func matchWholeWord(literal, text string, caseSensitive bool) bool {
	expr := `\b` + regexp.QuoteMeta(literal) + `\b`
	if !caseSensitive {
		expr = `(?i)` + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// matchRegex evaluates a user-supplied pattern. The rule corpus was
// written against a backtracking regex dialect (lookahead included), so
// patterns go through regexp2 rather than the stdlib's RE2 engine.
// Uncompilable or timed-out patterns are non-matches, never errors.
func matchRegex(pattern, text string, caseSensitive bool, rule string) bool {
	opts := regexp2.None
	if !caseSensitive {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		slog.Debug("unmatchable regex pattern", "pattern", pattern, "rule", rule, "error", err)
		return false
	}
	re.MatchTimeout = regexTimeout
	ok, err := re.MatchString(text)
	if err != nil {
		slog.Debug("regex evaluation failed", "pattern", pattern, "rule", rule, "error", err)
		return false
	}
	return ok
}
