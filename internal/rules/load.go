package rules

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// SkippedRule records a rule that failed validation during loading.
// Rule files may come from an LLM rule author, so individual bad entries
// are reported and skipped rather than failing the whole file.
type SkippedRule struct {
	Index  int
	Name   string
	Reason string
}

// LoadResult is the outcome of loading a rule file.
type LoadResult struct {
	Rules   []Rule
	Skipped []SkippedRule
}

// LoadFile reads an ordered JSON rule file. A missing or structurally
// malformed file (not a JSON array) is an error; individually invalid rules
// are skipped with a warning and reported in the result. Declaration order
// is preserved.
func LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes rule-file bytes. See LoadFile for the error contract.
func Parse(data []byte) (*LoadResult, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("rule file is not a JSON array: %w", err)
	}

	res := &LoadResult{}
	for i, entry := range raw {
		if err := ValidateRaw(entry); err != nil {
			res.Skipped = append(res.Skipped, SkippedRule{Index: i, Name: ruleName(entry), Reason: err.Error()})
			slog.Warn("skipping invalid rule", "index", i, "error", err)
			continue
		}
		var r Rule
		if err := json.Unmarshal(entry, &r); err != nil {
			res.Skipped = append(res.Skipped, SkippedRule{Index: i, Name: ruleName(entry), Reason: err.Error()})
			slog.Warn("skipping undecodable rule", "index", i, "error", err)
			continue
		}
		res.Rules = append(res.Rules, r)
	}
	return res, nil
}

// ruleName best-effort extracts a name from a raw entry for diagnostics.
func ruleName(raw json.RawMessage) string {
	var probe struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.Name
}
