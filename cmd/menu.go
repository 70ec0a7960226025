package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muscat-guide/places-cli/internal/maint"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Maintain menu data on the converged dataset",
}

// -- menu backfill --

var menuBackfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Back-fill menu placeholders onto restaurant entries",
	Long:  "Adds a placeholder menu to every restaurant entry lacking one. Dry run by default; --write backs up the file and commits the change.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		file := datasetFile(cmd, "tools.json")
		write, _ := cmd.Flags().GetBool("write")
		currency, _ := cmd.Flags().GetString("currency")
		debug, _ := cmd.Flags().GetBool("debug")

		if currency == "" {
			currency = cfg.Menu.Currency
		}

		outcome, err := maint.NewBackfiller().Run(maint.Options{
			File:     file,
			Write:    write,
			Currency: currency,
			Debug:    debug,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Scanned: %d entries\n", outcome.Scanned)
		fmt.Printf("Restaurants found: %d\n", outcome.Restaurants)

		if len(outcome.Changed) == 0 {
			fmt.Println("No changes needed.")
			return nil
		}

		if write {
			fmt.Printf("Added menu placeholders to %d records\n", len(outcome.Changed))
		} else {
			fmt.Printf("Would add menu placeholders to %d records\n", len(outcome.Changed))
		}
		for _, key := range outcome.Changed {
			fmt.Printf("  - %s\n", key)
		}

		if !write {
			fmt.Println("Dry run; re-run with --write to apply.")
			return nil
		}

		fmt.Printf("Backup written to %s\n", outcome.BackupPath)
		fmt.Printf("Updated %s\n", file)
		return nil
	},
}

func init() {
	menuBackfillCmd.Flags().String("file", "", "target dataset file (default <data_dir>/tools.json)")
	menuBackfillCmd.Flags().Bool("write", false, "commit changes; without it the run is a dry-run preview")
	menuBackfillCmd.Flags().String("currency", "", "placeholder currency code (default from config)")
	menuBackfillCmd.Flags().Bool("debug", false, "log per-entry classification")

	menuCmd.AddCommand(menuBackfillCmd)
	rootCmd.AddCommand(menuCmd)
}
