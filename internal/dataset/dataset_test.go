package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadRejectsNonArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON array")
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"a":`), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadKeepsMalformedEntriesRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"slug":"a"}, "loose string", 42]`), 0644))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.JSONEq(t, `"loose string"`, string(entries[1]))
}

func TestSaveRoundTripsAndPrettyPrints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "data.json")
	entries := []json.RawMessage{
		json.RawMessage(`{"slug":"café-corner","name":"Café & Grill"}`),
	}

	require.NoError(t, Save(path, entries))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// Non-ASCII and HTML-significant characters are preserved verbatim.
	assert.Contains(t, string(raw), "Café & Grill")
	assert.True(t, strings.Contains(string(raw), "\n  "), "output should be indented")

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.JSONEq(t, string(entries[0]), string(got[0]))
}

func TestBackupCopiesOriginalBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	original := []byte(`[{"slug":"a"}]`)
	require.NoError(t, os.WriteFile(path, original, 0644))

	backupPath, err := Backup(path)
	require.NoError(t, err)
	assert.Regexp(t, `\.bak\.\d{8}-\d{6}$`, backupPath)
	assert.Equal(t, filepath.Dir(path), filepath.Dir(backupPath))

	saved, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, original, saved)
}

func TestBackupMissingFile(t *testing.T) {
	_, err := Backup(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
