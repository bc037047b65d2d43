package engine

import (
	"fmt"
	"regexp"

	"github.com/casedocs/redline/internal/rules"
)

// applyCycle substitutes the next ring entry for whichever variations
// entry currently appears in the paragraph.
//
// Detection is whole-word: the ring ["Plaintiff", "Plaintiffs"] must
// recognize "Plaintiffs" as the second entry, not as the first entry plus
// an "s", or the cycle could never come back around. When no entry is
// present, the first entry is inserted where the trigger pattern matches.
func applyCycle(rule rules.Rule, p MutableParagraph) (bool, error) {
	variations := rule.Action.Variations
	if len(variations) == 0 {
		return false, fmt.Errorf("cycle action has no variations")
	}

	text := rules.NormalizeText(p.Text())
	for i, v := range variations {
		re, err := wordRegexp(v, rule.Trigger.CaseSensitive)
		if err != nil {
			return false, fmt.Errorf("cycle variation %q: %w", v, err)
		}
		if !re.MatchString(text) {
			continue
		}
		next := variations[(i+1)%len(variations)]
		replaced := re.ReplaceAllLiteralString(text, next)
		if replaced == text {
			return false, nil
		}
		p.SetText(replaced)
		return true, nil
	}

	// No ring entry present: fall back to planting the first entry at the
	// trigger's match location.
	return applyReplace(rule, p, variations[0])
}

func wordRegexp(literal string, caseSensitive bool) (*regexp.Regexp, error) {
	expr := `\b` + regexp.QuoteMeta(literal) + `\b`
	if !caseSensitive {
		expr = `(?i)` + expr
	}
	return regexp.Compile(expr)
}
