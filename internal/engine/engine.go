package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/casedocs/redline/internal/docx"
	"github.com/casedocs/redline/internal/rules"
	"github.com/casedocs/redline/internal/session"
)

// Report is the outcome of one apply pass.
type Report struct {
	// Changed reports whether any mutation actually altered the document.
	// It is a monotonic OR: once true for a run, it stays true.
	Changed bool `json:"changed"`

	// Errors counts non-fatal rule-application failures.
	Errors int `json:"error_count"`

	// Applications counts rule firings that changed something.
	Applications int `json:"applications"`

	// SkippedRules counts rule-file entries dropped during loading.
	SkippedRules int `json:"skipped_rules,omitempty"`
}

// Engine applies rule files to documents. The zero value is not usable;
// construct with New.
type Engine struct {
	host session.Host
}

// Option configures an Engine.
type Option func(*Engine)

// WithHost overrides the live-editor host bridge. Tests use this; so would
// an automation-backed host.
func WithHost(h session.Host) Option {
	return func(e *Engine) { e.host = h }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{host: session.FileHost{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply loads the rule file and applies it to the document at docPath.
// The rule store is loaded once and frozen for the duration of the pass.
func (e *Engine) Apply(docPath, rulesPath string) (*Report, error) {
	loaded, err := rules.LoadFile(rulesPath)
	if err != nil {
		return nil, configErr(rulesPath, err)
	}
	report, err := e.ApplyRules(docPath, loaded.Rules)
	if report != nil {
		report.SkippedRules = len(loaded.Skipped)
	}
	return report, err
}

// ApplyRules runs one full pass of the given rules over the document.
func (e *Engine) ApplyRules(docPath string, all []rules.Rule) (*Report, error) {
	docRules, paraRules := rules.Partition(all)
	slog.Info("starting apply pass",
		"doc", docPath, "document_rules", len(docRules), "paragraph_rules", len(paraRules))

	sess, err := session.Resolve(docPath, e.host)
	if err != nil {
		return nil, documentErr(docPath, err)
	}

	report := &Report{}

	// Document-scope replaces run exactly once each, in declaration
	// order, before any paragraph-scope rule sees the text.
	for _, rule := range docRules {
		changed, err := sess.Doc.ReplaceAll(
			rule.Trigger.Pattern, replacementOf(rule),
			rule.Trigger.CaseSensitive, rule.Trigger.WholeWord)
		if err != nil {
			report.Errors++
			slog.Warn("document-scope rule failed", "rule", rule.Name, "error", err)
			continue
		}
		if changed {
			report.Changed = true
			report.Applications++
			slog.Info("document-scope replacement applied", "rule", rule.Name)
		}
	}

	e.applyParagraphRules(sess.Doc, paraRules, report)

	if err := sess.Persist(report.Changed); err != nil {
		return report, persistErr(docPath, err)
	}
	slog.Info("apply pass finished",
		"changed", report.Changed, "applications", report.Applications, "errors", report.Errors)
	return report, nil
}

// applyParagraphRules enumerates paragraphs once and evaluates every
// paragraph-scope rule, in order, against each. Matching is re-evaluated
// against current text, so a replacement made by an earlier rule is seen
// by later rules in the same pass.
func (e *Engine) applyParagraphRules(doc *docx.Document, paraRules []rules.Rule, report *Report) {
	if len(paraRules) == 0 {
		return
	}
	catchAll := hasCatchAll(paraRules)

	for i, p := range doc.Paragraphs() {
		// Blank paragraphs are noise unless a catch-all rule is present.
		if strings.TrimSpace(p.Text()) == "" && !catchAll {
			continue
		}
		for _, rule := range paraRules {
			if !Match(rule, p) {
				continue
			}
			changed, err := applyAction(rule, p)
			if err != nil {
				report.Errors++
				slog.Warn("rule application failed",
					"rule", rule.Name, "paragraph", i+1, "error", err)
				continue
			}
			if changed {
				report.Changed = true
				report.Applications++
				slog.Debug("rule applied", "rule", rule.Name, "paragraph", i+1)
			}
		}
	}
}

func hasCatchAll(ruleSet []rules.Rule) bool {
	for _, r := range ruleSet {
		if r.Trigger.Pattern == ".*" {
			return true
		}
	}
	return false
}

func replacementOf(rule rules.Rule) string {
	if rule.Action.Replacement != nil {
		return *rule.Action.Replacement
	}
	return ""
}

// Preview renders a snapshot of the document to outPath as HTML. It works
// on a private ephemeral copy, never the original or a live session's
// file, and cleans up the working copy and any side artifacts on every
// exit path.
func (e *Engine) Preview(docPath, outPath string) error {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return documentErr(docPath, err)
	}

	workDir, err := os.MkdirTemp("", "redline-preview-")
	if err != nil {
		return fmt.Errorf("creating preview workspace: %w", err)
	}
	defer os.RemoveAll(workDir)
	// Editors export a "<name>.files" side folder next to HTML output;
	// remove any stale one so the snapshot stands alone.
	defer os.RemoveAll(strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".files")

	workCopy := filepath.Join(workDir, uuid.NewString()+".docx")
	if err := os.WriteFile(workCopy, data, 0o600); err != nil {
		return fmt.Errorf("copying document for preview: %w", err)
	}

	doc, err := docx.Open(workCopy)
	if err != nil {
		return documentErr(docPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating preview output: %w", err)
	}
	defer out.Close()

	if err := doc.ExportHTML(out, filepath.Base(docPath)); err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}
	slog.Info("preview generated", "doc", docPath, "out", outPath)
	return nil
}

// SelectionFormatting reads the formatting of the live editor selection.
func (e *Engine) SelectionFormatting() (*session.Selection, error) {
	sel, err := e.host.SelectionFormatting()
	if err != nil {
		return nil, &Error{Code: CodeNoLiveSession, Message: "reading live selection", Err: err}
	}
	return sel, nil
}
