package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/muscat-guide/places-cli/internal/ingest"
	"github.com/muscat-guide/places-cli/internal/stage"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize raw discovery records into canonical places",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input := filepath.Join(cfg.Paths.TmpDir, stage.FileDiscoveredRaw)
		output := filepath.Join(cfg.Paths.TmpDir, stage.FileNormalized)

		in, out, err := ingest.NewNormalizer().Run(input, output)
		if err != nil {
			return err
		}

		fmt.Printf("normalize: %d in, %d out\n", in, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
