// Package build emits the site-build artifacts derived from the
// converged place dataset: per-category shards, sitemaps, and the
// client-side search index.
package build

import (
	"encoding/json"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/muscat-guide/places-cli/internal/dataset"
	"github.com/muscat-guide/places-cli/internal/model"
)

// Feeds shards the places by category into <outDir>/<category-slug>.json
// so a page only downloads the places for its own category. It returns
// the number of feeds written. Entries that do not parse as places are
// skipped.
func Feeds(places []model.Place, outDir string) (int, error) {
	byCategory := map[string][]model.Place{}
	for _, p := range places {
		for _, cat := range p.Categories {
			byCategory[cat] = append(byCategory[cat], p)
		}
	}

	written := 0
	for cat, records := range byCategory {
		name := model.Slugify(cat, "")
		if name == "" {
			// Category names that slugify to nothing get no feed file.
			continue
		}
		entries := make([]json.RawMessage, len(records))
		for i, p := range records {
			raw, err := json.Marshal(p)
			if err != nil {
				return 0, eris.Wrapf(err, "build: encode feed entry %s", p.Slug)
			}
			entries[i] = raw
		}
		if err := dataset.Save(filepath.Join(outDir, name+".json"), entries); err != nil {
			return 0, err
		}
		written++
	}
	return written, nil
}

// LoadPlaces reads the converged dataset into typed places, skipping
// entries that do not parse as place records.
func LoadPlaces(path string) ([]model.Place, error) {
	entries, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	places := make([]model.Place, 0, len(entries))
	for _, raw := range entries {
		var p model.Place
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		places = append(places, p)
	}
	return places, nil
}
