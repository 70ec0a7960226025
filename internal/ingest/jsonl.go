// Package ingest turns raw discovery output into canonical place
// records and owns the line-delimited file handling shared with the
// discovery commands.
package ingest

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// ReadLines reads a line-delimited file fully into memory, skipping
// blank lines. A missing file is not an error: it returns (nil, false,
// nil) so callers can treat absent upstream input as a no-op.
func ReadLines(path string) ([][]byte, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer f.Close()

	var lines [][]byte
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		// Keep the original bytes: pass-through stages promise
		// byte-identical output.
		lines = append(lines, append([]byte(nil), line...))
	}
	if err := sc.Err(); err != nil {
		return nil, true, eris.Wrapf(err, "ingest: read %s", path)
	}
	return lines, true, nil
}

// WriteLines writes a line-delimited file, creating the parent
// directory if absent. The content is staged in a temporary file in
// the destination directory and renamed into place, so a crash
// mid-write never leaves a truncated output behind.
func WriteLines(path string, lines [][]byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "ingest: mkdir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrap(err, "ingest: create temp file")
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.Write(line); err != nil {
			tmp.Close()
			return eris.Wrapf(err, "ingest: write %s", path)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			return eris.Wrapf(err, "ingest: write %s", path)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return eris.Wrapf(err, "ingest: flush %s", path)
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "ingest: close temp for %s", path)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "ingest: rename into %s", path)
	}
	return nil
}
