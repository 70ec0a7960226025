package build

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/muscat-guide/places-cli/internal/model"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name  `xml:"urlset"`
	Xmlns   string    `xml:"xmlns,attr"`
	URLs    []siteURL `xml:"url"`
}

type siteURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemaps writes sitemap.xml (site-level pages) and
// sitemap-places.xml (one URL per place with a slug) under outDir.
// Places without a slug have no stable URL and are omitted.
func Sitemaps(places []model.Place, baseURL, outDir string) error {
	base := strings.TrimRight(baseURL, "/")

	site := urlSet{Xmlns: sitemapNS, URLs: []siteURL{{Loc: base + "/"}}}
	if err := writeSitemap(filepath.Join(outDir, "sitemap.xml"), site); err != nil {
		return err
	}

	placeSet := urlSet{Xmlns: sitemapNS}
	for _, p := range places {
		if p.Slug == "" {
			continue
		}
		placeSet.URLs = append(placeSet.URLs, siteURL{
			Loc:     base + "/places/" + p.Slug,
			LastMod: lastModDate(p.LastUpdated),
		})
	}
	return writeSitemap(filepath.Join(outDir, "sitemap-places.xml"), placeSet)
}

// lastModDate reduces an upstream timestamp to the calendar date the
// sitemap format expects, or empty when the timestamp is unusable.
func lastModDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ""
}

func writeSitemap(path string, set urlSet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "build: mkdir %s", dir)
	}

	raw, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "build: encode %s", path)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return eris.Wrap(err, "build: create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(xml.Header); err != nil {
		tmp.Close()
		return eris.Wrapf(err, "build: write %s", path)
	}
	if _, err := tmp.Write(append(raw, '\n')); err != nil {
		tmp.Close()
		return eris.Wrapf(err, "build: write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "build: close temp for %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "build: rename into %s", path)
	}
	return nil
}
