package rules

import "encoding/json"

// Trigger scopes.
const (
	// ScopeParagraph evaluates the trigger against each paragraph in turn.
	ScopeParagraph = "paragraph"

	// ScopeDocument evaluates the trigger once against the whole document.
	// Only valid with a replace action.
	ScopeDocument = "document"
)

// Match types.
const (
	MatchContains   = "contains"
	MatchStartsWith = "starts_with"
	MatchRegex      = "regex"
)

// Action types.
const (
	ActionFormat  = "format"
	ActionReplace = "replace"
	ActionCycle   = "cycle"
)

// Rule is a single declarative trigger/action pair. Rules are immutable for
// the duration of one apply pass, and their declaration order is significant:
// rules are evaluated in file order, and every matching rule fires.
type Rule struct {
	Name    string  `json:"name"`
	Enabled bool    `json:"enabled"`
	Trigger Trigger `json:"trigger"`
	Action  Action  `json:"action"`
}

// UnmarshalJSON decodes a rule with enabled defaulting to true when absent,
// and normalizes the legacy spellings still present in old rule files
// (scope "all_text", action type "format_advanced", key "list_string_regex").
func (r *Rule) UnmarshalJSON(data []byte) error {
	type alias Rule
	tmp := alias{Enabled: true}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*r = Rule(tmp)
	r.normalize()
	return nil
}

func (r *Rule) normalize() {
	switch r.Trigger.Scope {
	case "", "all_text":
		if r.Trigger.Scope == "all_text" {
			r.Trigger.Scope = ScopeDocument
		} else {
			r.Trigger.Scope = ScopeParagraph
		}
	}
	if r.Trigger.MatchType == "" {
		r.Trigger.MatchType = MatchContains
	}
	if r.Trigger.ListStringPattern == "" && r.Trigger.listStringRegex != "" {
		r.Trigger.ListStringPattern = r.Trigger.listStringRegex
	}
	if r.Action.Type == "format_advanced" {
		r.Action.Type = ActionFormat
	}
}

// Trigger is the predicate half of a rule.
//
// The text predicate (MatchType/Pattern) is evaluated against the paragraph's
// raw text and, for non-regex match types, against its decorated text (list
// marker + space + raw text). The remaining fields are conjunctive filters:
// all that are present must hold for the trigger to match.
type Trigger struct {
	Scope         string `json:"scope"`
	MatchType     string `json:"match_type"`
	Pattern       string `json:"pattern"`
	WholeWord     bool   `json:"whole_word"`
	CaseSensitive bool   `json:"case_sensitive"`

	// IsList, when set, requires the paragraph's list membership to agree.
	IsList *bool `json:"is_list,omitempty"`

	// ListStringPattern, when set, requires the paragraph to be a list item
	// whose rendered marker matches this regular expression.
	ListStringPattern string `json:"list_string_pattern,omitempty"`

	// PropertyMatch maps property paths (e.g. "Range.Font.Bold") to the
	// values they must currently hold. A path that fails to resolve is a
	// non-match, never an error.
	PropertyMatch map[string]any `json:"property_match,omitempty"`

	// Legacy key used by the original rule corpus.
	listStringRegex string
}

// triggerAlias exists so UnmarshalJSON can capture the legacy key without
// exposing it on the public struct.
type triggerAlias Trigger

func (t *Trigger) UnmarshalJSON(data []byte) error {
	var tmp struct {
		triggerAlias
		ListStringRegex string `json:"list_string_regex"`
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*t = Trigger(tmp.triggerAlias)
	t.listStringRegex = tmp.ListStringRegex
	return nil
}

// Action is the effect half of a rule.
type Action struct {
	Type       string      `json:"type"`
	Formatting *Formatting `json:"formatting,omitempty"`

	// Replacement is the substitute text for replace actions.
	Replacement *string `json:"replacement,omitempty"`

	// Variations is the ordered ring for cycle actions: whichever entry is
	// currently present in the paragraph is replaced with the next one,
	// wrapping after the last.
	Variations []string `json:"variations,omitempty"`
}

// Formatting describes the named formatting fields a format action may set.
// Indents are in inches; spacing and font size are in points. Nil means
// "leave alone". DynamicProperties is the escape hatch for any attribute
// without a named field, applied through the property registry.
type Formatting struct {
	Style *string `json:"style,omitempty"`

	LeftIndent      *float64 `json:"left_indent,omitempty"`
	RightIndent     *float64 `json:"right_indent,omitempty"`
	FirstLineIndent *float64 `json:"first_line_indent,omitempty"`

	SpaceBefore *float64 `json:"space_before,omitempty"`
	SpaceAfter  *float64 `json:"space_after,omitempty"`
	LineSpacing *float64 `json:"line_spacing,omitempty"`

	Alignment *string `json:"alignment,omitempty"`

	FontName   *string  `json:"font_name,omitempty"`
	FontSize   *float64 `json:"font_size,omitempty"`
	FontBold   *bool    `json:"font_bold,omitempty"`
	FontItalic *bool    `json:"font_italic,omitempty"`
	FontColor  *string  `json:"font_color,omitempty"`

	DynamicProperties map[string]any `json:"dynamic_properties,omitempty"`
}

// Empty reports whether the formatting sets nothing at all.
func (f *Formatting) Empty() bool {
	if f == nil {
		return true
	}
	return f.Style == nil && f.LeftIndent == nil && f.RightIndent == nil &&
		f.FirstLineIndent == nil && f.SpaceBefore == nil && f.SpaceAfter == nil &&
		f.LineSpacing == nil && f.Alignment == nil && f.FontName == nil &&
		f.FontSize == nil && f.FontBold == nil && f.FontItalic == nil &&
		f.FontColor == nil && len(f.DynamicProperties) == 0
}
