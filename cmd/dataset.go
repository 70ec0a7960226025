package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

// datasetFile resolves a command's target dataset: the --file flag when
// set, else the named file under the configured data dir. The build and
// qa commands read the converged places.json; only the maintenance tool
// targets tools.json.
func datasetFile(cmd *cobra.Command, name string) string {
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		file = filepath.Join(cfg.Paths.DataDir, name)
	}
	return file
}
