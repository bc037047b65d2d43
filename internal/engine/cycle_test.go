package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedocs/redline/internal/rules"
)

func cycleRule(pattern string, variations ...string) rules.Rule {
	return rules.Rule{
		Name:    "party-cycle",
		Trigger: rules.Trigger{MatchType: rules.MatchContains, Pattern: pattern},
		Action:  rules.Action{Type: rules.ActionCycle, Variations: variations},
	}
}

func TestApplyCycle_AdvancesToNextVariation(t *testing.T) {
	p := newFakeParagraph("The Plaintiff moves to dismiss")
	rule := cycleRule("Plaintiff", "Plaintiff", "Plaintiffs")

	changed, err := applyCycle(rule, p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "The Plaintiffs moves to dismiss", p.text)
}

func TestApplyCycle_RoundTrips(t *testing.T) {
	// ["Plaintiff", "Plaintiffs"] must come back around: the plural is
	// recognized as the second entry, not as the first plus an "s".
	p := newFakeParagraph("The Plaintiffs moves to dismiss")
	rule := cycleRule("Plaintiff", "Plaintiff", "Plaintiffs")

	changed, err := applyCycle(rule, p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "The Plaintiff moves to dismiss", p.text)
}

func TestApplyCycle_ThreeWayRing(t *testing.T) {
	rule := cycleRule("Vendor", "Vendor", "Supplier", "Contractor")
	p := newFakeParagraph("Supplier obligations")

	changed, err := applyCycle(rule, p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Contractor obligations", p.text)

	changed, err = applyCycle(rule, p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Vendor obligations", p.text)
}

func TestApplyCycle_FallsBackToTriggerReplacement(t *testing.T) {
	// No ring entry present: the first entry is planted at the trigger
	// pattern's location.
	p := newFakeParagraph("The claimant moves to dismiss")
	rule := cycleRule("claimant", "Plaintiff", "Plaintiffs")

	changed, err := applyCycle(rule, p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "The Plaintiff moves to dismiss", p.text)
}

func TestApplyCycle_SingleEntryRingIsNoOp(t *testing.T) {
	// A one-entry ring substitutes an entry for itself. That must not
	// report a change, or every pass would rewrite the document.
	p := newFakeParagraph("The Plaintiff moves to dismiss")
	rule := cycleRule("Plaintiff", "Plaintiff")

	changed, err := applyCycle(rule, p)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "The Plaintiff moves to dismiss", p.text)
}

func TestApplyCycle_NoVariationsErrors(t *testing.T) {
	p := newFakeParagraph("text")
	_, err := applyCycle(cycleRule("text"), p)
	assert.Error(t, err)
}

func TestApplyCycle_CaseSensitivity(t *testing.T) {
	rule := cycleRule("vendor", "Vendor", "Supplier")
	rule.Trigger.CaseSensitive = true
	p := newFakeParagraph("the vendor delivers")

	// Case-sensitive detection misses "vendor", so falls back to
	// replacing the trigger text with the first variation.
	changed, err := applyCycle(rule, p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "the Vendor delivers", p.text)
}
