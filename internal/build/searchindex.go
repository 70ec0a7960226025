package build

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/muscat-guide/places-cli/internal/dataset"
	"github.com/muscat-guide/places-cli/internal/model"
)

// SearchDoc is one entry of the client-side search index. Ranking and
// matching happen in the browser; this side only emits the documents.
type SearchDoc struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Categories   []string `json:"categories"`
	Cuisines     []string `json:"cuisines,omitempty"`
	Neighborhood string   `json:"neighborhood,omitempty"`
}

// SearchIndex writes data/search-index.json style documents for every
// place with a slug.
func SearchIndex(places []model.Place, path string) error {
	docs := make([]json.RawMessage, 0, len(places))
	for _, p := range places {
		if p.Slug == "" {
			continue
		}
		doc := SearchDoc{
			Slug:       p.Slug,
			Name:       p.Name,
			Categories: p.Categories,
			Cuisines:   p.Cuisines,
		}
		if p.Location.Neighborhood != nil {
			doc.Neighborhood = *p.Location.Neighborhood
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return eris.Wrapf(err, "build: encode search doc %s", p.Slug)
		}
		docs = append(docs, raw)
	}
	return dataset.Save(path, docs)
}

// All emits every build artifact from one dataset load. The three
// outputs are independent and read the same immutable slice, so they
// run concurrently.
func All(ctx context.Context, places []model.Place, baseURL, dataDir string) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := Feeds(places, filepath.Join(dataDir, "categories"))
		return err
	})
	g.Go(func() error {
		return Sitemaps(places, baseURL, filepath.Join(dataDir, "sitemaps"))
	})
	g.Go(func() error {
		return SearchIndex(places, filepath.Join(dataDir, "search-index.json"))
	})

	return g.Wait()
}
