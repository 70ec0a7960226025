package maint

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muscat-guide/places-cli/internal/dataset"
	"github.com/muscat-guide/places-cli/internal/model"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tools.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	raw, err := dataset.Load(path)
	require.NoError(t, err)
	out := make([]map[string]any, len(raw))
	for i, r := range raw {
		require.NoError(t, json.Unmarshal(r, &out[i]))
	}
	return out
}

func TestBackfillDryRunDefault(t *testing.T) {
	path := writeDataset(t, `[{"slug":"a","categories":["Restaurants"]}, {"slug":"b","categories":["Hotels"]}]`)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	out, err := NewBackfiller().Run(Options{File: path, Currency: "OMR"})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Scanned)
	assert.Equal(t, 1, out.Restaurants)
	assert.Equal(t, []string{"a"}, out.Changed)
	assert.False(t, out.Wrote)
	assert.Empty(t, out.BackupPath)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "dry run must not modify the file")
}

func TestBackfillWriteMode(t *testing.T) {
	path := writeDataset(t, `[{"slug":"a","categories":["Restaurants"]}, {"slug":"b","categories":["Hotels"]}]`)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	out, err := NewBackfiller().Run(Options{File: path, Write: true, Currency: "OMR"})
	require.NoError(t, err)
	assert.True(t, out.Wrote)
	require.NotEmpty(t, out.BackupPath)

	// Backup holds the original two-entry array, byte for byte.
	backup, err := os.ReadFile(out.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, original, backup)

	entries := loadEntries(t, path)
	require.Len(t, entries, 2)

	menu, ok := entries[0]["menu"].(map[string]any)
	require.True(t, ok, "restaurant entry should have a menu")
	assert.Equal(t, "placeholder", menu["status"])
	assert.Equal(t, "OMR", menu["currency"])

	_, hasMenu := entries[1]["menu"]
	assert.False(t, hasMenu, "hotel entry must never receive a menu")
}

func TestBackfillIdempotent(t *testing.T) {
	path := writeDataset(t, `[{"slug":"a","categories":["Restaurants"]}]`)

	b := NewBackfiller()
	first, err := b.Run(Options{File: path, Write: true, Currency: "OMR"})
	require.NoError(t, err)
	require.Len(t, first.Changed, 1)

	afterFirst, err := os.ReadFile(path)
	require.NoError(t, err)

	second, err := b.Run(Options{File: path, Write: true, Currency: "OMR"})
	require.NoError(t, err)
	assert.Empty(t, second.Changed)
	assert.False(t, second.Wrote, "no-op run must not write or back up")

	afterSecond, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, afterFirst, afterSecond)
}

func TestBackfillLeavesExistingMenuUntouched(t *testing.T) {
	path := writeDataset(t, `[{"slug":"a","categories":["Restaurants"],"menu":{"foo":1}}]`)

	out, err := NewBackfiller().Run(Options{File: path, Write: true, Currency: "OMR"})
	require.NoError(t, err)
	assert.Empty(t, out.Changed)

	entries := loadEntries(t, path)
	menu, ok := entries[0]["menu"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"foo": float64(1)}, menu, "no key may be added to or removed from an existing menu")
}

func TestBackfillCategoryFallbacks(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{name: "plural categories", json: `{"slug":"x","categories":["Restaurants"]}`, want: true},
		{name: "case folded and trimmed", json: `{"slug":"x","categories":["  RESTAURANTS "]}`, want: true},
		{name: "singular category field", json: `{"slug":"x","category":["Restaurants"]}`, want: true},
		{name: "scalar coerced to set", json: `{"slug":"x","categories":"Restaurants"}`, want: true},
		{name: "hotel", json: `{"slug":"x","categories":["Hotels"]}`, want: false},
		{name: "no categories", json: `{"slug":"x"}`, want: false},
		{name: "non-string categories", json: `{"slug":"x","categories":[1,2]}`, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeDataset(t, "["+tc.json+"]")
			out, err := NewBackfiller().Run(Options{File: path, Currency: "OMR"})
			require.NoError(t, err)
			assert.Equal(t, tc.want, len(out.Changed) == 1)
		})
	}
}

func TestBackfillCurrencyOverride(t *testing.T) {
	path := writeDataset(t, `[{"slug":"a","categories":["Restaurants"]}]`)

	_, err := NewBackfiller().Run(Options{File: path, Write: true, Currency: "AED"})
	require.NoError(t, err)

	entries := loadEntries(t, path)
	menu := entries[0]["menu"].(map[string]any)
	assert.Equal(t, "AED", menu["currency"])
}

func TestBackfillSkipsMalformedEntries(t *testing.T) {
	path := writeDataset(t, `["just a string", {"slug":"a","categories":["Restaurants"]}]`)

	out, err := NewBackfiller().Run(Options{File: path, Write: true, Currency: "OMR"})
	require.NoError(t, err)
	assert.Equal(t, []string{"idx:0"}, out.Skipped)
	assert.Equal(t, []string{"a"}, out.Changed)

	// The malformed entry survives the rewrite unchanged.
	raw, err := dataset.Load(path)
	require.NoError(t, err)
	assert.JSONEq(t, `"just a string"`, string(raw[0]))
}

func TestBackfillFatalErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewBackfiller().Run(Options{File: filepath.Join(t.TempDir(), "absent.json"), Currency: "OMR"})
		require.Error(t, err)
	})

	t.Run("top-level not an array", func(t *testing.T) {
		path := writeDataset(t, `{"slug":"a"}`)
		_, err := NewBackfiller().Run(Options{File: path, Currency: "OMR"})
		require.Error(t, err)
	})
}

func TestBackfillEntryKeyFallsBackToNameThenIndex(t *testing.T) {
	path := writeDataset(t, `[{"name":"No Slug Diner","categories":["Restaurants"]}, {"categories":["Restaurants"]}]`)

	out, err := NewBackfiller().Run(Options{File: path, Currency: "OMR"})
	require.NoError(t, err)
	assert.Equal(t, []string{"No Slug Diner", "idx:1"}, out.Changed)
}

func TestNewPlaceholderShape(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	menu := NewPlaceholder("OMR", now)

	assert.Equal(t, model.MenuStatusPlaceholder, menu.Status)
	assert.Equal(t, "manual", menu.Source.Type)
	assert.Nil(t, menu.Source.CapturedAt)
	assert.Equal(t, "OMR", menu.Currency)
	assert.Equal(t, "2026-08-30T12:00:00Z", menu.LastUpdated)
	require.Len(t, menu.Sections, 1)
	assert.Equal(t, "Popular", menu.Sections[0].Title)
	require.Len(t, menu.Sections[0].Items, 1)
}
