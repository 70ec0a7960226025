package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muscat-guide/places-cli/internal/ingest"
	"github.com/muscat-guide/places-cli/internal/model"
	"github.com/muscat-guide/places-cli/internal/stage"
	"github.com/muscat-guide/places-cli/pkg/googleplaces"
	"github.com/muscat-guide/places-cli/pkg/overpass"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover points of interest from external providers",
	Long:  "Commands that query discovery providers and write raw records to the pipeline tmp dir.",
}

// -- discover google --

var discoverGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Discover places via the Google Places nearby search",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Google.MapsAPIKey == "" {
			return eris.New("google maps API key is required (PLACES_GOOGLE_MAPS_API_KEY)")
		}

		placeType, _ := cmd.Flags().GetString("type")
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")
		radius, _ := cmd.Flags().GetInt("radius")

		log := zap.L().With(zap.String("command", "discover.google"))

		var opts []googleplaces.Option
		if cfg.Google.BaseURL != "" {
			opts = append(opts, googleplaces.WithBaseURL(cfg.Google.BaseURL))
		}
		client := googleplaces.NewClient(cfg.Google.MapsAPIKey, opts...)

		results, err := client.SearchNearby(ctx, placeType, lat, lng, radius)
		if err != nil {
			return eris.Wrap(err, "discover google")
		}

		log.Info("search complete", zap.String("type", placeType), zap.Int("results", len(results)))

		collected := time.Now().UTC().Format(time.RFC3339)
		records := make([]model.RawRecord, len(results))
		for i, p := range results {
			records[i] = model.RawRecord{
				Name:        strPtr(p.DisplayName),
				Categories:  p.Types,
				Lat:         &p.Lat,
				Lng:         &p.Lng,
				Address:     strPtr(p.FormattedAddress),
				Website:     strPtr(p.WebsiteURI),
				Phone:       strPtr(p.Phone),
				MapsURL:     strPtr(p.MapsURI),
				CollectedAt: &collected,
				Provider:    strPtr("google"),
				PlaceID:     strPtr(p.ID),
			}
		}

		out := filepath.Join(cfg.Paths.TmpDir, stage.FileDiscoveredRaw)
		if err := writeRawRecords(out, records); err != nil {
			return err
		}

		fmt.Printf("discover google: %d records -> %s\n", len(records), out)
		return nil
	},
}

// -- discover osm --

var discoverOSMCmd = &cobra.Command{
	Use:   "osm",
	Short: "Discover places via the OpenStreetMap Overpass API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		amenity, _ := cmd.Flags().GetString("amenity")
		bboxStr, _ := cmd.Flags().GetString("bbox")

		bbox, err := overpass.ParseBBox(bboxStr)
		if err != nil {
			return eris.Wrap(err, "discover osm")
		}

		log := zap.L().With(zap.String("command", "discover.osm"))

		var opts []overpass.Option
		if cfg.Overpass.BaseURL != "" {
			opts = append(opts, overpass.WithBaseURL(cfg.Overpass.BaseURL))
		}
		client := overpass.NewClient(opts...)

		elements, err := client.Search(ctx, amenity, bbox)
		if err != nil {
			return eris.Wrap(err, "discover osm")
		}

		log.Info("search complete", zap.String("amenity", amenity), zap.Int("results", len(elements)))

		collected := time.Now().UTC().Format(time.RFC3339)
		records := make([]model.RawRecord, len(elements))
		for i, el := range elements {
			records[i] = model.RawRecord{
				Name:        strPtr(el.Tags["name"]),
				Categories:  []string{amenity},
				Lat:         &el.Lat,
				Lng:         &el.Lon,
				Website:     strPtr(el.Tags["website"]),
				Phone:       strPtr(el.Tags["phone"]),
				CollectedAt: &collected,
				Provider:    strPtr("osm"),
				PlaceID:     strPtr(strconv.FormatInt(el.ID, 10)),
			}
		}

		out := filepath.Join(cfg.Paths.TmpDir, stage.FileDiscoveredRaw)
		if err := writeRawRecords(out, records); err != nil {
			return err
		}

		fmt.Printf("discover osm: %d records -> %s\n", len(records), out)
		return nil
	},
}

func init() {
	discoverGoogleCmd.Flags().String("type", "restaurant", "place type for the nearby search")
	discoverGoogleCmd.Flags().Float64("lat", 23.5880, "search center latitude")
	discoverGoogleCmd.Flags().Float64("lng", 58.3829, "search center longitude")
	discoverGoogleCmd.Flags().Int("radius", 5000, "search radius in meters")

	discoverOSMCmd.Flags().String("amenity", "restaurant", "OSM amenity value to search for")
	discoverOSMCmd.Flags().String("bbox", "23.52,58.25,23.70,58.60", "bounding box as south,west,north,east")

	discoverCmd.AddCommand(discoverGoogleCmd)
	discoverCmd.AddCommand(discoverOSMCmd)
	rootCmd.AddCommand(discoverCmd)
}

// writeRawRecords encodes records as JSONL at path via an atomic
// replace, matching the stage file contract.
func writeRawRecords(path string, records []model.RawRecord) error {
	lines := make([][]byte, len(records))
	for i, rec := range records {
		encoded, err := json.Marshal(rec)
		if err != nil {
			return eris.Wrap(err, "encode raw record")
		}
		lines[i] = encoded
	}
	return ingest.WriteLines(path, lines)
}

// strPtr returns a pointer to s, or nil when s is empty so absent
// provider fields stay absent in the raw schema.
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
