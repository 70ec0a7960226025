package model

import "time"

// Provenance is an audit entry recording which provider and pipeline
// stage contributed which fields, and when. Entries are append-only:
// a stage that derives or overwrites fields appends a new entry and
// never mutates a prior one.
type Provenance struct {
	Provider    string   `json:"provider"`
	Stage       string   `json:"stage,omitempty"`
	PlaceID     *string  `json:"place_id"`
	Fields      []string `json:"fields"`
	TermsURL    *string  `json:"terms_url"`
	CollectedAt string   `json:"collected_at"`
}

// NewProvenance builds a provenance entry for a set of fields collected
// from a provider. CollectedAt is the current UTC calendar date only;
// the coarse day granularity is intentional so that records collected
// the same day dedupe to one entry. TermsURL stays nil until real
// providers with terms-of-service links are wired in.
func NewProvenance(provider string, placeID *string, fields []string) Provenance {
	return Provenance{
		Provider:    provider,
		PlaceID:     placeID,
		Fields:      fields,
		CollectedAt: time.Now().UTC().Format("2006-01-02"),
	}
}
