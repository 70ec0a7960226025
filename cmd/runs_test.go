package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/muscat-guide/places-cli/internal/store"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)
	runs := []store.StageRun{
		{
			ID:         "abc12345-6789-0000-0000-000000000000",
			Stage:      "dedupe_merge",
			RecordsIn:  10,
			RecordsOut: 8,
			InputFound: true,
			RanAt:      now,
		},
		{
			ID:         "def12345-6789-0000-0000-000000000000",
			Stage:      "hydrate",
			InputFound: false,
			RanAt:      now.Add(time.Minute),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "STAGE")
	assert.Contains(t, output, "dedupe_merge")
	assert.Contains(t, output, "hydrate")
	assert.Contains(t, output, "found")
	assert.Contains(t, output, "missing")
	assert.Contains(t, output, "2026-08-30 10:30")
	assert.Contains(t, output, "abc12345")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789-0000-0000-000000000000"))
	assert.Equal(t, "short", truncateID("short"))
}
