package main

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/muscat-guide/places-cli/internal/config"
)

func newFileFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("file", "", "")
	return cmd
}

func TestDatasetFileDefaults(t *testing.T) {
	orig := cfg
	defer func() { cfg = orig }()
	cfg = &config.Config{Paths: config.PathsConfig{DataDir: "data"}}

	// qa and build read the converged dataset; the maintenance tool
	// targets its own file.
	assert.Equal(t, filepath.Join("data", "places.json"), datasetFile(newFileFlagCmd(), "places.json"))
	assert.Equal(t, filepath.Join("data", "tools.json"), datasetFile(newFileFlagCmd(), "tools.json"))
}

func TestDatasetFileFlagOverride(t *testing.T) {
	orig := cfg
	defer func() { cfg = orig }()
	cfg = &config.Config{Paths: config.PathsConfig{DataDir: "data"}}

	cmd := newFileFlagCmd()
	assert.NoError(t, cmd.Flags().Set("file", "elsewhere/other.json"))
	assert.Equal(t, "elsewhere/other.json", datasetFile(cmd, "places.json"))
}
