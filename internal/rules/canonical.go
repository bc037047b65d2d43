package rules

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares paragraph text for matching: NFC-normalize (DOCX
// producers disagree about combining sequences) and strip the trailing
// paragraph mark carried over from the host object model.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimRight(s, "\r\n"))
}

// Fold lower-cases text for case-insensitive comparison. Matching defaults
// to case-insensitive unless the trigger opts in to case sensitivity.
func Fold(s string) string {
	return strings.ToLower(s)
}
