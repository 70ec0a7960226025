package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/muscat-guide/places-cli/internal/build"
	"github.com/muscat-guide/places-cli/internal/model"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Emit site-build artifacts from the converged dataset",
	Long:  "Commands that read the converged dataset and write the static artifacts the site consumes: category feeds, sitemaps, and the search index.",
}

func loadBuildPlaces(cmd *cobra.Command) ([]model.Place, error) {
	return build.LoadPlaces(datasetFile(cmd, "places.json"))
}

// -- build feeds --

var buildFeedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Write per-category place feeds",
	RunE: func(cmd *cobra.Command, _ []string) error {
		places, err := loadBuildPlaces(cmd)
		if err != nil {
			return err
		}

		n, err := build.Feeds(places, filepath.Join(cfg.Paths.DataDir, "categories"))
		if err != nil {
			return err
		}
		fmt.Printf("build feeds: %d feeds written\n", n)
		return nil
	},
}

// -- build sitemaps --

var buildSitemapsCmd = &cobra.Command{
	Use:   "sitemaps",
	Short: "Write the sitemap index and place sitemap",
	RunE: func(cmd *cobra.Command, _ []string) error {
		places, err := loadBuildPlaces(cmd)
		if err != nil {
			return err
		}

		if err := build.Sitemaps(places, cfg.Site.BaseURL, filepath.Join(cfg.Paths.DataDir, "sitemaps")); err != nil {
			return err
		}
		fmt.Println("build sitemaps: done")
		return nil
	},
}

// -- build searchindex --

var buildSearchIndexCmd = &cobra.Command{
	Use:   "searchindex",
	Short: "Write the client-side search index",
	RunE: func(cmd *cobra.Command, _ []string) error {
		places, err := loadBuildPlaces(cmd)
		if err != nil {
			return err
		}

		if err := build.SearchIndex(places, filepath.Join(cfg.Paths.DataDir, "search-index.json")); err != nil {
			return err
		}
		fmt.Println("build searchindex: done")
		return nil
	},
}

// -- build all --

var buildAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Write every build artifact",
	RunE: func(cmd *cobra.Command, _ []string) error {
		places, err := loadBuildPlaces(cmd)
		if err != nil {
			return err
		}

		if err := build.All(cmd.Context(), places, cfg.Site.BaseURL, cfg.Paths.DataDir); err != nil {
			return err
		}
		fmt.Printf("build all: %d places, artifacts written to %s\n", len(places), cfg.Paths.DataDir)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{buildFeedsCmd, buildSitemapsCmd, buildSearchIndexCmd, buildAllCmd} {
		c.Flags().String("file", "", "source dataset file (default <data_dir>/places.json)")
		buildCmd.AddCommand(c)
	}
	rootCmd.AddCommand(buildCmd)
}
