// Package dataset reads and writes the converged place dataset files:
// JSON arrays of place records mutated in place by the maintenance
// tooling and read by the build stages.
package dataset

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
)

// Load reads a JSON array file. Entries come back raw so that callers
// can handle malformed individual elements without failing the whole
// file; a missing file or a top-level value that is not an array is an
// error.
func Load(path string) ([]json.RawMessage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, eris.Wrapf(err, "dataset: %s must be a JSON array", path)
	}
	return entries, nil
}

// Save writes entries as a pretty-printed JSON array, two-space
// indented with non-ASCII and HTML characters left unescaped. The file
// is staged next to the destination and renamed into place.
func Save(path string, entries []json.RawMessage) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return eris.Wrapf(err, "dataset: encode %s", path)
	}
	return writeAtomic(path, buf.Bytes())
}

// Backup copies the current contents of path to a timestamped sibling
// (<path>.bak.<YYYYMMDD-HHMMSS>) and returns the backup path. The copy
// is staged and renamed so the backup is never observed half-written.
func Backup(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "dataset: read %s for backup", path)
	}

	backupPath := path + ".bak." + time.Now().UTC().Format("20060102-150405")
	if err := writeAtomic(backupPath, raw); err != nil {
		return "", err
	}
	return backupPath, nil
}

// writeAtomic writes data to a temp file in the destination directory
// and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "dataset: mkdir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrap(err, "dataset: create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return eris.Wrapf(err, "dataset: write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "dataset: close temp for %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "dataset: rename into %s", path)
	}
	return nil
}
