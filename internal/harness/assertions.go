package harness

import (
	"bytes"
	"fmt"
	"os"

	"github.com/casedocs/redline/internal/docx"
	"github.com/casedocs/redline/internal/engine"
	"github.com/casedocs/redline/internal/rules"
)

// AssertionContext carries what assertions need beyond the result: the
// engine and paths, so an idempotence assertion can re-run the pass.
type AssertionContext struct {
	Engine    *engine.Engine
	DocPath   string
	RulesPath string
}

// AssertionError describes one failed assertion with enough context to
// debug without re-running the scenario.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s\n  expected: %s\n  actual: %s",
		e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion against the result, recording
// failures on the result. Document and report assertions run first;
// idempotence re-runs the pass last so it observes the settled document.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) {
	idempotent := false
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertParagraphText:
			err = assertParagraphText(result, a)
		case AssertParagraphProperty:
			err = assertParagraphProperty(actx.DocPath, a)
		case AssertReport:
			err = assertReport(result.Report, a)
		case AssertIdempotent:
			idempotent = true
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			result.AddError(err.Error())
		}
	}

	if idempotent {
		if err := assertIdempotent(result, actx); err != nil {
			result.AddError(err.Error())
		}
	}
}

func assertParagraphText(result *Result, a Assertion) error {
	if a.Index >= len(result.Paragraphs) {
		return &AssertionError{
			Type:     AssertParagraphText,
			Expected: fmt.Sprintf("paragraph %d present", a.Index),
			Actual:   fmt.Sprintf("%d paragraphs", len(result.Paragraphs)),
		}
	}
	got := result.Paragraphs[a.Index].Text
	if got != a.Equals {
		return &AssertionError{
			Type:     AssertParagraphText,
			Expected: fmt.Sprintf("paragraph %d text %q", a.Index, a.Equals),
			Actual:   fmt.Sprintf("%q", got),
		}
	}
	return nil
}

func assertParagraphProperty(docPath string, a Assertion) error {
	doc, err := docx.Open(docPath)
	if err != nil {
		return fmt.Errorf("reopening document for property assertion: %w", err)
	}
	paras := doc.Paragraphs()
	if a.Index >= len(paras) {
		return &AssertionError{
			Type:     AssertParagraphProperty,
			Expected: fmt.Sprintf("paragraph %d present", a.Index),
			Actual:   fmt.Sprintf("%d paragraphs", len(paras)),
		}
	}
	got, ok := paras[a.Index].GetProperty(rules.PropertyPath(a.Property))
	if !ok {
		return &AssertionError{
			Type:     AssertParagraphProperty,
			Expected: fmt.Sprintf("paragraph %d %s = %v", a.Index, a.Property, a.Value),
			Actual:   "property not readable",
		}
	}
	if !rules.EqualValues(got, a.Value) {
		return &AssertionError{
			Type:     AssertParagraphProperty,
			Expected: fmt.Sprintf("paragraph %d %s = %v", a.Index, a.Property, a.Value),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}

func assertReport(report *engine.Report, a Assertion) error {
	if a.Changed != nil && report.Changed != *a.Changed {
		return &AssertionError{
			Type:     AssertReport,
			Expected: fmt.Sprintf("changed=%v", *a.Changed),
			Actual:   fmt.Sprintf("changed=%v", report.Changed),
		}
	}
	if a.Applications != nil && report.Applications != *a.Applications {
		return &AssertionError{
			Type:     AssertReport,
			Expected: fmt.Sprintf("%d applications", *a.Applications),
			Actual:   fmt.Sprintf("%d applications", report.Applications),
		}
	}
	if a.Errors != nil && report.Errors != *a.Errors {
		return &AssertionError{
			Type:     AssertReport,
			Expected: fmt.Sprintf("%d errors", *a.Errors),
			Actual:   fmt.Sprintf("%d errors", report.Errors),
		}
	}
	if a.Skipped != nil && report.SkippedRules != *a.Skipped {
		return &AssertionError{
			Type:     AssertReport,
			Expected: fmt.Sprintf("%d skipped rules", *a.Skipped),
			Actual:   fmt.Sprintf("%d skipped rules", report.SkippedRules),
		}
	}
	return nil
}

// assertIdempotent re-runs the pass and requires a no-op: no reported
// changes and a byte-identical file.
func assertIdempotent(result *Result, actx *AssertionContext) error {
	before, err := os.ReadFile(actx.DocPath)
	if err != nil {
		return fmt.Errorf("reading document for idempotence check: %w", err)
	}

	rerun, err := actx.Engine.Apply(actx.DocPath, actx.RulesPath)
	if err != nil {
		return fmt.Errorf("idempotence re-run: %w", err)
	}
	result.Rerun = rerun

	if rerun.Changed {
		return &AssertionError{
			Type:     AssertIdempotent,
			Expected: "second pass reports no changes",
			Actual:   fmt.Sprintf("changed=true with %d applications", rerun.Applications),
		}
	}

	after, err := os.ReadFile(actx.DocPath)
	if err != nil {
		return fmt.Errorf("reading document after idempotence re-run: %w", err)
	}
	if !bytes.Equal(before, after) {
		return &AssertionError{
			Type:     AssertIdempotent,
			Expected: "file untouched by second pass",
			Actual:   "file bytes differ",
		}
	}
	return nil
}
