package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleUnmarshal_Defaults(t *testing.T) {
	var r Rule
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "minimal",
		"trigger": {"pattern": "x"},
		"action": {"type": "format"}
	}`), &r))

	assert.True(t, r.Enabled, "enabled defaults to true")
	assert.Equal(t, ScopeParagraph, r.Trigger.Scope)
	assert.Equal(t, MatchContains, r.Trigger.MatchType)
	assert.False(t, r.Trigger.CaseSensitive)
	assert.Nil(t, r.Trigger.IsList)
}

func TestRuleUnmarshal_ExplicitDisabled(t *testing.T) {
	var r Rule
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "off",
		"enabled": false,
		"trigger": {"pattern": "x"},
		"action": {"type": "format"}
	}`), &r))

	assert.False(t, r.Enabled)
}

func TestRuleUnmarshal_LegacySpellings(t *testing.T) {
	var r Rule
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "legacy",
		"trigger": {
			"scope": "all_text",
			"pattern": "x",
			"list_string_regex": "^[0-9]+\\."
		},
		"action": {"type": "format_advanced"}
	}`), &r))

	assert.Equal(t, ScopeDocument, r.Trigger.Scope)
	assert.Equal(t, ActionFormat, r.Action.Type)
	assert.Equal(t, `^[0-9]+\.`, r.Trigger.ListStringPattern)
}

func TestRuleUnmarshal_ListStringPatternWins(t *testing.T) {
	// When both spellings are present the modern key takes precedence.
	var r Rule
	require.NoError(t, json.Unmarshal([]byte(`{
		"trigger": {
			"pattern": "x",
			"list_string_pattern": "new",
			"list_string_regex": "old"
		},
		"action": {"type": "format"}
	}`), &r))

	assert.Equal(t, "new", r.Trigger.ListStringPattern)
}

func TestRuleUnmarshal_IsListTriState(t *testing.T) {
	var withTrue, withFalse, absent Rule
	require.NoError(t, json.Unmarshal([]byte(`{"trigger":{"pattern":"x","is_list":true},"action":{"type":"format"}}`), &withTrue))
	require.NoError(t, json.Unmarshal([]byte(`{"trigger":{"pattern":"x","is_list":false},"action":{"type":"format"}}`), &withFalse))
	require.NoError(t, json.Unmarshal([]byte(`{"trigger":{"pattern":"x"},"action":{"type":"format"}}`), &absent))

	require.NotNil(t, withTrue.Trigger.IsList)
	assert.True(t, *withTrue.Trigger.IsList)
	require.NotNil(t, withFalse.Trigger.IsList)
	assert.False(t, *withFalse.Trigger.IsList)
	assert.Nil(t, absent.Trigger.IsList)
}

func TestFormattingEmpty(t *testing.T) {
	assert.True(t, (*Formatting)(nil).Empty())
	assert.True(t, (&Formatting{}).Empty())

	b := true
	assert.False(t, (&Formatting{FontBold: &b}).Empty())
	assert.False(t, (&Formatting{DynamicProperties: map[string]any{"Style": "Normal"}}).Empty())
}
