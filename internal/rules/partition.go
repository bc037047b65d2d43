package rules

import "log/slog"

// Partition splits enabled rules into the two evaluation phases: document-
// scope replace rules (run exactly once each, before any paragraph work) and
// paragraph-scope rules (evaluated per paragraph). Declaration order is
// preserved within each partition.
//
// A document-scope rule whose action is not replace is invalid and dropped
// with a warning; no other action type has whole-document semantics.
func Partition(all []Rule) (document, paragraph []Rule) {
	for _, r := range all {
		if !r.Enabled {
			continue
		}
		switch r.Trigger.Scope {
		case ScopeDocument:
			if r.Action.Type != ActionReplace {
				slog.Warn("dropping document-scope rule with non-replace action",
					"rule", r.Name, "action", r.Action.Type)
				continue
			}
			document = append(document, r)
		case ScopeParagraph:
			paragraph = append(paragraph, r)
		default:
			slog.Warn("dropping rule with unknown scope", "rule", r.Name, "scope", r.Trigger.Scope)
		}
	}
	return document, paragraph
}
