package model

// RawRecord is the loosely-typed discovery schema emitted by the
// provider stages. Every field is optional; the normalizer validates
// and defaults at this boundary so downstream stages can assume the
// canonical Place shape.
type RawRecord struct {
	Name         *string           `json:"name"`
	Categories   []string          `json:"categories"`
	Lat          *float64          `json:"lat"`
	Lng          *float64          `json:"lng"`
	Address      *string           `json:"address"`
	Neighborhood *string           `json:"neighborhood"`
	Website      *string           `json:"website"`
	Phone        *string           `json:"phone"`
	MapsURL      *string           `json:"maps_url"`
	Hours        map[string]string `json:"hours"`
	CollectedAt  *string           `json:"collected_at"`
	Provider     *string           `json:"provider"`
	PlaceID      *string           `json:"place_id"`
}
