package engine

import (
	"errors"
	"fmt"
)

// Error is a classifiable engine failure. Expected, local failures (a rule
// not matching, a property path not resolving) never surface here; Error
// covers the structural failures a CLI maps to distinct exit codes.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Rule names the offending rule, when one is involved.
	Rule string

	// Path is the document or rule-file path involved.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

// Code categorizes engine errors.
type Code string

const (
	// CodeConfig: the rule file is missing or structurally invalid.
	// Raised before any document mutation.
	CodeConfig Code = "CONFIG_INVALID"

	// CodeDocument: the target document is missing or unreadable.
	// Raised before any mutation.
	CodeDocument Code = "DOCUMENT_UNAVAILABLE"

	// CodeRuleApplication: one rule failed on one paragraph. Callers only
	// see this code in logs and the report's error count; it never aborts
	// a pass.
	CodeRuleApplication Code = "RULE_APPLICATION"

	// CodePersistence: the final save failed. The original file is
	// guaranteed untouched.
	CodePersistence Code = "PERSISTENCE"

	// CodeNoLiveSession: an operation required a live editor session and
	// none exists.
	CodeNoLiveSession Code = "NO_LIVE_SESSION"
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Rule != "" {
		msg += fmt.Sprintf(" (rule %q)", e.Rule)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// CodeOf extracts the engine error code, or "" for foreign errors.
func CodeOf(err error) Code {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

// IsConfigError reports whether err is a rule-file configuration error.
func IsConfigError(err error) bool { return CodeOf(err) == CodeConfig }

// IsDocumentError reports whether err is a document availability error.
func IsDocumentError(err error) bool { return CodeOf(err) == CodeDocument }

// IsPersistenceError reports whether err is a failed final save.
func IsPersistenceError(err error) bool { return CodeOf(err) == CodePersistence }

func configErr(path string, err error) *Error {
	return &Error{Code: CodeConfig, Message: "loading rules", Path: path, Err: err}
}

func documentErr(path string, err error) *Error {
	return &Error{Code: CodeDocument, Message: "resolving document", Path: path, Err: err}
}

func persistErr(path string, err error) *Error {
	return &Error{Code: CodePersistence, Message: "persisting document", Path: path, Err: err}
}
