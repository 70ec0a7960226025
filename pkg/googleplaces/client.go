// Package googleplaces provides a minimal client for the Google Places
// Nearby Search API, scoped to what the discovery stage needs.
package googleplaces

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the Places operations used by discovery.
type Client interface {
	// SearchNearby returns places of the given type around a point.
	SearchNearby(ctx context.Context, placeType string, lat, lng float64, radiusMeters int) ([]Place, error)
}

// Place is one result of a nearby search, reduced to the fields the
// pipeline ingests.
type Place struct {
	ID               string   `json:"id"`
	DisplayName      string   `json:"display_name"`
	Types            []string `json:"types"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	FormattedAddress string   `json:"formatted_address"`
	WebsiteURI       string   `json:"website_uri"`
	Phone            string   `json:"phone"`
	MapsURI          string   `json:"maps_uri"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithRateLimit overrides the request rate limit.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *httpClient) { c.limiter = rate.NewLimiter(limit, burst) }
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new Places client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://places.googleapis.com/v1",
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(5), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchNearbyRequest struct {
	IncludedTypes       []string            `json:"includedTypes"`
	MaxResultCount      int                 `json:"maxResultCount"`
	LocationRestriction locationRestriction `json:"locationRestriction"`
}

type locationRestriction struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type searchNearbyResponse struct {
	Places []struct {
		ID          string `json:"id"`
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		Types                    []string `json:"types"`
		Location                 latLng   `json:"location"`
		FormattedAddress         string   `json:"formattedAddress"`
		WebsiteURI               string   `json:"websiteUri"`
		InternationalPhoneNumber string   `json:"internationalPhoneNumber"`
		GoogleMapsURI            string   `json:"googleMapsUri"`
	} `json:"places"`
}

const fieldMask = "places.id,places.displayName,places.types,places.location," +
	"places.formattedAddress,places.websiteUri,places.internationalPhoneNumber,places.googleMapsUri"

func (c *httpClient) SearchNearby(ctx context.Context, placeType string, lat, lng float64, radiusMeters int) ([]Place, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "googleplaces: rate limit wait")
	}

	payload, err := json.Marshal(searchNearbyRequest{
		IncludedTypes:  []string{placeType},
		MaxResultCount: 20,
		LocationRestriction: locationRestriction{
			Circle: circle{
				Center: latLng{Latitude: lat, Longitude: lng},
				Radius: float64(radiusMeters),
			},
		},
	})
	if err != nil {
		return nil, eris.Wrap(err, "googleplaces: encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/places:searchNearby", c.baseURL), bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "googleplaces: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "googleplaces: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "googleplaces: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("googleplaces: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed searchNearbyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "googleplaces: decode response")
	}

	places := make([]Place, 0, len(parsed.Places))
	for _, p := range parsed.Places {
		places = append(places, Place{
			ID:               p.ID,
			DisplayName:      p.DisplayName.Text,
			Types:            p.Types,
			Lat:              p.Location.Latitude,
			Lng:              p.Location.Longitude,
			FormattedAddress: p.FormattedAddress,
			WebsiteURI:       p.WebsiteURI,
			Phone:            p.InternationalPhoneNumber,
			MapsURI:          p.GoogleMapsURI,
		})
	}
	return places, nil
}
