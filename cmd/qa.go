package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/muscat-guide/places-cli/internal/qa"
)

var qaCmd = &cobra.Command{
	Use:   "qa",
	Short: "Editorial quality checks on the converged dataset",
}

// -- qa validate --

var qaValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every place against the canonical schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		file := datasetFile(cmd, "places.json")

		violations, err := qa.Validate(file)
		if err != nil {
			return err
		}

		if len(violations) == 0 {
			fmt.Println("Dataset valid.")
			return nil
		}

		for _, v := range violations {
			fmt.Println(v)
		}
		return eris.Errorf("%d schema violations", len(violations))
	},
}

// -- qa report --

var qaReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report required fields still missing per entry",
	RunE: func(cmd *cobra.Command, _ []string) error {
		file := datasetFile(cmd, "places.json")

		report, err := qa.Report(file)
		if err != nil {
			return err
		}

		if len(report) == 0 {
			fmt.Println("No incomplete entries.")
			return nil
		}

		for _, slug := range report.Slugs() {
			fmt.Printf("%s: missing %s\n", slug, strings.Join(report[slug], ", "))
		}
		return nil
	},
}

func init() {
	qaValidateCmd.Flags().String("file", "", "target dataset file (default <data_dir>/places.json)")
	qaReportCmd.Flags().String("file", "", "target dataset file (default <data_dir>/places.json)")

	qaCmd.AddCommand(qaValidateCmd)
	qaCmd.AddCommand(qaReportCmd)
	rootCmd.AddCommand(qaCmd)
}
