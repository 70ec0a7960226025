// Package overpass provides a minimal client for the OpenStreetMap
// Overpass API, scoped to what the discovery stage needs.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the Overpass operations used by discovery.
type Client interface {
	// Search returns elements with the given amenity tag inside a
	// south,west,north,east bounding box.
	Search(ctx context.Context, amenity string, bbox BBox) ([]Element, error)
}

// BBox is a south,west,north,east bounding box in degrees.
type BBox struct {
	South, West, North, East float64
}

// ParseBBox parses the "south,west,north,east" flag form.
func ParseBBox(s string) (BBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BBox{}, eris.Errorf("overpass: bbox must be south,west,north,east, got %q", s)
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%f", &vals[i]); err != nil {
			return BBox{}, eris.Wrapf(err, "overpass: bad bbox component %q", part)
		}
	}
	return BBox{South: vals[0], West: vals[1], North: vals[2], East: vals[3]}, nil
}

// Element is one OSM node or way center with tags.
type Element struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom interpreter endpoint (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new Overpass client. The public Overpass
// endpoints are shared infrastructure, so the default rate is
// deliberately gentle.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://overpass-api.de/api/interpreter",
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type overpassResponse struct {
	Elements []struct {
		ID     int64   `json:"id"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
		Center *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"center"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

func (c *httpClient) Search(ctx context.Context, amenity string, bbox BBox) ([]Element, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "overpass: rate limit wait")
	}

	query := fmt.Sprintf(`[out:json][timeout:25];
(
  node["amenity"=%q](%f,%f,%f,%f);
  way["amenity"=%q](%f,%f,%f,%f);
);
out center;`,
		amenity, bbox.South, bbox.West, bbox.North, bbox.East,
		amenity, bbox.South, bbox.West, bbox.North, bbox.East,
	)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "overpass: create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "overpass: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "overpass: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("overpass: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed overpassResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "overpass: decode response")
	}

	elements := make([]Element, 0, len(parsed.Elements))
	for _, e := range parsed.Elements {
		lat, lon := e.Lat, e.Lon
		if e.Center != nil {
			lat, lon = e.Center.Lat, e.Center.Lon
		}
		elements = append(elements, Element{ID: e.ID, Lat: lat, Lon: lon, Tags: e.Tags})
	}
	return elements, nil
}
