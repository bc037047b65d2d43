package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/casedocs/redline/internal/docx"
	"github.com/casedocs/redline/internal/engine"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh fixture in a private temp directory.
// Execution flow:
//  1. Synthesize the DOCX fixture and write the rule file
//  2. Run one apply pass through the public engine entry point
//  3. Reopen the saved document and capture its state
//  4. Evaluate assertions (an idempotence assertion re-runs the pass)
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "redline-harness-")
	if err != nil {
		return nil, fmt.Errorf("creating scenario workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	docPath := filepath.Join(dir, "document.docx")
	if err := scenario.Document.WriteFile(docPath); err != nil {
		return nil, fmt.Errorf("building fixture: %w", err)
	}

	rulesPath := filepath.Join(dir, "rules.json")
	ruleJSON, err := json.MarshalIndent(scenario.Rules, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing rules: %w", err)
	}
	if err := os.WriteFile(rulesPath, ruleJSON, 0o644); err != nil {
		return nil, fmt.Errorf("writing rule file: %w", err)
	}

	eng := engine.New()
	report, err := eng.Apply(docPath, rulesPath)
	if err != nil {
		return nil, fmt.Errorf("apply pass: %w", err)
	}

	result := NewResult()
	result.Report = report
	if result.Paragraphs, err = captureState(docPath); err != nil {
		return nil, err
	}

	actx := &AssertionContext{
		Engine:    eng,
		DocPath:   docPath,
		RulesPath: rulesPath,
	}
	EvaluateAssertions(result, scenario.Assertions, actx)
	return result, nil
}

// captureState reopens the document and snapshots every paragraph in
// enumeration order.
func captureState(docPath string) ([]ParagraphState, error) {
	doc, err := docx.Open(docPath)
	if err != nil {
		return nil, fmt.Errorf("reopening document: %w", err)
	}
	var states []ParagraphState
	for _, p := range doc.Paragraphs() {
		states = append(states, ParagraphState{
			Text:   p.Text(),
			Marker: p.ListMarker(),
			IsList: p.IsListItem(),
		})
	}
	return states, nil
}
