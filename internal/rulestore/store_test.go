package rulestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedocs/redline/internal/rules"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "rules.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func replaceRule(name, pattern, replacement string) rules.Rule {
	return rules.Rule{
		Name:    name,
		Enabled: true,
		Trigger: rules.Trigger{
			Scope:     rules.ScopeParagraph,
			MatchType: rules.MatchContains,
			Pattern:   pattern,
		},
		Action: rules.Action{Type: rules.ActionReplace, Replacement: &replacement},
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.SaveSet(context.Background(), "a", []rules.Rule{replaceRule("r", "x", "y")}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	loaded, err := s2.LoadSet(context.Background(), "a")
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestSaveSet_PreservesOrder(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	set := []rules.Rule{
		replaceRule("third-created-first", "a", "b"),
		replaceRule("alpha", "c", "d"),
		replaceRule("zulu", "e", "f"),
	}
	require.NoError(t, s.SaveSet(ctx, "ordered", set))

	loaded, err := s.LoadSet(ctx, "ordered")
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	for i, r := range loaded {
		assert.Equal(t, set[i].Name, r.Name)
		assert.Equal(t, set[i].Trigger.Pattern, r.Trigger.Pattern)
	}
}

func TestSaveSet_ReplacesPreviousContents(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveSet(ctx, "evolving", []rules.Rule{
		replaceRule("old-1", "a", "b"),
		replaceRule("old-2", "c", "d"),
	}))
	require.NoError(t, s.SaveSet(ctx, "evolving", []rules.Rule{
		replaceRule("new", "e", "f"),
	}))

	loaded, err := s.LoadSet(ctx, "evolving")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "new", loaded[0].Name)
}

func TestSaveSet_RoundTripsFullRuleShape(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	isList := true
	style := "Heading 1"
	r := rules.Rule{
		Name:    "full",
		Enabled: true,
		Trigger: rules.Trigger{
			Scope:         rules.ScopeParagraph,
			MatchType:     rules.MatchStartsWith,
			Pattern:       "WHEREAS",
			CaseSensitive: true,
			IsList:        &isList,
			PropertyMatch: map[string]any{"Range.Font.Bold": true},
		},
		Action: rules.Action{
			Type:       rules.ActionFormat,
			Formatting: &rules.Formatting{Style: &style},
		},
	}
	require.NoError(t, s.SaveSet(ctx, "shape", []rules.Rule{r}))

	loaded, err := s.LoadSet(ctx, "shape")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	got := loaded[0]
	assert.Equal(t, "WHEREAS", got.Trigger.Pattern)
	assert.True(t, got.Trigger.CaseSensitive)
	require.NotNil(t, got.Trigger.IsList)
	assert.True(t, *got.Trigger.IsList)
	require.NotNil(t, got.Action.Formatting)
	require.NotNil(t, got.Action.Formatting.Style)
	assert.Equal(t, "Heading 1", *got.Action.Formatting.Style)
}

func TestLoadSet_NotFound(t *testing.T) {
	s := openStore(t)
	_, err := s.LoadSet(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSetNotFound)
}

func TestLoadSet_EmptySetIsNotAnError(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveSet(ctx, "empty", nil))

	loaded, err := s.LoadSet(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestDeleteSet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveSet(ctx, "doomed", []rules.Rule{replaceRule("r", "x", "y")}))

	require.NoError(t, s.DeleteSet(ctx, "doomed"))
	_, err := s.LoadSet(ctx, "doomed")
	assert.ErrorIs(t, err, ErrSetNotFound)

	assert.ErrorIs(t, s.DeleteSet(ctx, "doomed"), ErrSetNotFound)
}

func TestListSets(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveSet(ctx, "zulu", []rules.Rule{replaceRule("r", "x", "y")}))
	require.NoError(t, s.SaveSet(ctx, "alpha", []rules.Rule{
		replaceRule("r1", "a", "b"),
		replaceRule("r2", "c", "d"),
	}))
	require.NoError(t, s.SaveSet(ctx, "empty", nil))

	infos, err := s.ListSets(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, 2, infos[0].Rules)
	assert.Equal(t, "empty", infos[1].Name)
	assert.Zero(t, infos[1].Rules)
	assert.Equal(t, "zulu", infos[2].Name)
	assert.NotEmpty(t, infos[2].UpdatedAt)
}

func TestImportExport_RoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	src := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(src, []byte(`[
		{"name": "rename", "trigger": {"pattern": "Vendor"},
		 "action": {"type": "replace", "replacement": "Supplier"}},
		{"name": "broken", "trigger": "nope"}
	]`), 0o644))

	imported, skipped, err := s.ImportFile(ctx, "contracts", src)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, skipped)

	out := filepath.Join(dir, "out.json")
	require.NoError(t, s.ExportFile(ctx, "contracts", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var exported []map[string]any
	require.NoError(t, json.Unmarshal(data, &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "rename", exported[0]["name"])

	// The exported file loads back with nothing skipped.
	loaded, err := rules.LoadFile(out)
	require.NoError(t, err)
	assert.Len(t, loaded.Rules, 1)
	assert.Empty(t, loaded.Skipped)
}

func TestImportFile_MissingFile(t *testing.T) {
	s := openStore(t)
	_, _, err := s.ImportFile(context.Background(), "x", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestExportFile_UnknownSet(t *testing.T) {
	s := openStore(t)
	err := s.ExportFile(context.Background(), "missing", filepath.Join(t.TempDir(), "out.json"))
	assert.ErrorIs(t, err, ErrSetNotFound)
}
