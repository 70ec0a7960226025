// Package model defines the canonical place schema shared by every
// pipeline stage and the dataset tooling.
package model

// Place is the canonical representation of one point of interest. It is
// created once by the normalizer and threaded through the enrichment
// stages, each of which fills in its designated fields.
type Place struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Categories  []string          `json:"categories"`
	Location    Location          `json:"location"`
	Actions     Actions           `json:"actions"`
	Hours       map[string]string `json:"hours"`
	Cuisines    []string          `json:"cuisines,omitempty"`
	PriceRange  string            `json:"price_range,omitempty"`
	Badges      []string          `json:"badges,omitempty"`
	About       string            `json:"about,omitempty"`
	Provenance  []Provenance      `json:"provenance"`
	LastUpdated string            `json:"last_updated,omitempty"`
	Menu        *Menu             `json:"menu,omitempty"`
}

// Location holds the geographic fields of a place. All fields are
// optional until the geocode stage fills them in.
type Location struct {
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	Address      *string  `json:"address"`
	Neighborhood *string  `json:"neighborhood"`
}

// Actions holds the outbound links of a place.
type Actions struct {
	Website *string `json:"website"`
	Phone   *string `json:"phone"`
	MapsURL *string `json:"maps_url"`
}

// Menu is the structured menu sub-record. A placeholder instance is
// back-filled onto restaurant entries by the maintenance tool; real
// menu data replaces it out of band.
type Menu struct {
	Status      string        `json:"status"`
	Source      MenuSource    `json:"source"`
	Currency    string        `json:"currency"`
	LastUpdated string        `json:"last_updated"`
	Sections    []MenuSection `json:"sections"`
	Notes       string        `json:"notes,omitempty"`
}

// MenuStatus values for Menu.Status.
const (
	MenuStatusPlaceholder = "placeholder"
	MenuStatusScraped     = "scraped"
	MenuStatusVerified    = "verified"
)

// MenuSource records where a menu was captured from.
type MenuSource struct {
	Type       string  `json:"type"`
	URL        string  `json:"url"`
	CapturedAt *string `json:"captured_at"`
}

// MenuSection is one titled group of menu items.
type MenuSection struct {
	Title string     `json:"title"`
	Items []MenuItem `json:"items"`
}

// MenuItem is a single dish or offering on a menu.
type MenuItem struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Desc  string   `json:"desc,omitempty"`
	Tags  []string `json:"tags"`
}
