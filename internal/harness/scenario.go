package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance scenario: a document fixture, the rules
// to apply, and assertions over the outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the fixture to synthesize.
	Document Fixture `yaml:"document"`

	// Rules is the rule set, in declaration order, expressed as plain
	// maps. The harness serializes them to a rule file verbatim, so a
	// scenario can also exercise invalid entries the loader must skip.
	Rules []map[string]any `yaml:"rules"`

	// Assertions validate the document and report after the pass.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of the outcome.
type Assertion struct {
	// Type selects the assertion:
	//   - "paragraph_text": paragraph at Index has exactly Equals text
	//   - "paragraph_property": property at Index matches Value
	//   - "report": report fields match (subset: only set fields checked)
	//   - "idempotent": a second pass reports no changes and leaves the
	//     file byte-identical
	Type string `yaml:"type"`

	// Index is the paragraph position in enumeration order (0-based).
	Index int `yaml:"index,omitempty"`

	// Equals is the expected text (paragraph_text).
	Equals string `yaml:"equals,omitempty"`

	// Property is the property path (paragraph_property).
	Property string `yaml:"property,omitempty"`

	// Value is the expected property value (paragraph_property).
	Value any `yaml:"value,omitempty"`

	// Report expectations (report). Pointers so zero values are
	// distinguishable from "not asserted".
	Changed      *bool `yaml:"changed,omitempty"`
	Applications *int  `yaml:"applications,omitempty"`
	Errors       *int  `yaml:"errors,omitempty"`
	Skipped      *int  `yaml:"skipped,omitempty"`
}

// Assertion type constants.
const (
	AssertParagraphText     = "paragraph_text"
	AssertParagraphProperty = "paragraph_property"
	AssertReport            = "report"
	AssertIdempotent        = "idempotent"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos like "assertion:" fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Document.Paragraphs) == 0 {
		return fmt.Errorf("document.paragraphs is required and must be non-empty")
	}
	if len(s.Rules) == 0 {
		return fmt.Errorf("rules list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a, len(s.Document.Paragraphs)); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion, paragraphs int) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertParagraphText:
		if a.Index < 0 || a.Index >= paragraphs {
			return fmt.Errorf("assertions[%d]: index %d out of range", index, a.Index)
		}
	case AssertParagraphProperty:
		if a.Index < 0 || a.Index >= paragraphs {
			return fmt.Errorf("assertions[%d]: index %d out of range", index, a.Index)
		}
		if a.Property == "" {
			return fmt.Errorf("assertions[%d]: property is required for paragraph_property", index)
		}
	case AssertReport:
		if a.Changed == nil && a.Applications == nil && a.Errors == nil && a.Skipped == nil {
			return fmt.Errorf("assertions[%d]: report assertion needs at least one expectation", index)
		}
	case AssertIdempotent:
		// No parameters.
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
