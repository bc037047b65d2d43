package rules

import (
	"fmt"
	"strings"
)

// PropertyPath is a dot-separated path from a paragraph to a primitive
// attribute, spelled against the host word-processor object model the rule
// corpus was authored for (e.g. "Range.Font.Bold", "LeftIndent", "Style").
//
// Paths are the engine's generic formatting escape hatch: triggers test them
// via property_match and format actions set them via dynamic_properties.
// Navigation failures degrade to "not found" rather than erroring.
type PropertyPath string

// Segments splits the path on dots. The empty path yields nil.
func (p PropertyPath) Segments() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), ".")
}

// Validate rejects paths with empty segments ("Range..Bold", trailing dots).
func (p PropertyPath) Validate() error {
	if p == "" {
		return fmt.Errorf("empty property path")
	}
	for _, seg := range p.Segments() {
		if seg == "" {
			return fmt.Errorf("property path %q has an empty segment", p)
		}
	}
	return nil
}
