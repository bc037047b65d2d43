package harness

import "github.com/casedocs/redline/internal/engine"

// ParagraphState captures one paragraph of the document after the apply
// pass, as rules would observe it.
type ParagraphState struct {
	Text   string `json:"text"`
	Marker string `json:"marker,omitempty"`
	IsList bool   `json:"is_list,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: all assertions held.
	Pass bool `json:"pass"`

	// Report is the engine report from the first apply pass.
	Report *engine.Report `json:"report"`

	// Rerun is the report from the idempotence re-run, when a scenario
	// asserted idempotence. Nil otherwise.
	Rerun *engine.Report `json:"rerun,omitempty"`

	// Paragraphs is the document state after the pass.
	Paragraphs []ParagraphState `json:"paragraphs"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result to accumulate into.
func NewResult() *Result {
	return &Result{Pass: true, Errors: []string{}}
}

// AddError records an assertion failure and marks the result failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
