package stage

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/muscat-guide/places-cli/internal/model"
)

// StageDedupeMerge tags provenance entries appended by the merge stage.
const StageDedupeMerge = "dedupe_merge"

// survivor is a record that made it through dedupe, plus the names of
// fields filled in from records merged into it.
type survivor struct {
	place  *model.Place
	filled []string
}

// DedupeMerge returns the transform for the dedupe/merge stage. Two
// records are judged duplicates when they share a slug and their
// coordinates are within proximityDegrees of each other (records
// without coordinates match on slug alone). The survivor is the first
// occurrence; empty fields are filled from later duplicates and a
// provenance entry naming the filled fields is appended. Records with
// an empty slug are never merged.
func DedupeMerge(proximityDegrees float64) Transform {
	return func(records []json.RawMessage) ([]json.RawMessage, error) {
		places := make([]model.Place, len(records))
		for i, rec := range records {
			if err := json.Unmarshal(rec, &places[i]); err != nil {
				return nil, eris.Wrapf(err, "dedupe: parse record %d", i+1)
			}
		}

		var order []*survivor
		bySlug := map[string][]*survivor{}

		for i := range places {
			p := &places[i]
			if p.Slug != "" {
				if s := closest(bySlug[p.Slug], p, proximityDegrees); s != nil {
					s.filled = append(s.filled, fillFrom(s.place, p)...)
					continue
				}
			}
			s := &survivor{place: p}
			order = append(order, s)
			if p.Slug != "" {
				bySlug[p.Slug] = append(bySlug[p.Slug], s)
			}
		}

		out := make([]json.RawMessage, 0, len(order))
		for _, s := range order {
			if len(s.filled) > 0 {
				prov := model.NewProvenance("pipeline", nil, s.filled)
				prov.Stage = StageDedupeMerge
				s.place.Provenance = append(s.place.Provenance, prov)
			}
			encoded, err := json.Marshal(s.place)
			if err != nil {
				return nil, eris.Wrap(err, "dedupe: encode record")
			}
			out = append(out, encoded)
		}
		return out, nil
	}
}

// closest returns the first same-slug survivor within the proximity
// threshold of p, or nil when none qualifies.
func closest(candidates []*survivor, p *model.Place, proximityDegrees float64) *survivor {
	for _, s := range candidates {
		if withinProximity(s.place.Location, p.Location, proximityDegrees) {
			return s
		}
	}
	return nil
}

// withinProximity reports whether two locations are close enough to be
// the same place. A location without coordinates matches anything: the
// slug already agreed and there is nothing to contradict it.
func withinProximity(a, b model.Location, proximityDegrees float64) bool {
	if a.Lat == nil || a.Lng == nil || b.Lat == nil || b.Lng == nil {
		return true
	}
	ca := geom.Coord{*a.Lng, *a.Lat}
	cb := geom.Coord{*b.Lng, *b.Lat}
	return xy.Distance(ca, cb) <= proximityDegrees
}

// fillFrom copies fields that dst is missing from src, returning the
// names of the fields that were filled. Existing values on dst are
// never overwritten.
func fillFrom(dst, src *model.Place) []string {
	var filled []string

	if dst.Location.Lat == nil && src.Location.Lat != nil {
		dst.Location.Lat = src.Location.Lat
		dst.Location.Lng = src.Location.Lng
		filled = append(filled, "lat", "lng")
	}
	if dst.Location.Address == nil && src.Location.Address != nil {
		dst.Location.Address = src.Location.Address
		filled = append(filled, "address")
	}
	if dst.Location.Neighborhood == nil && src.Location.Neighborhood != nil {
		dst.Location.Neighborhood = src.Location.Neighborhood
		filled = append(filled, "neighborhood")
	}
	if dst.Actions.Website == nil && src.Actions.Website != nil {
		dst.Actions.Website = src.Actions.Website
		filled = append(filled, "website")
	}
	if dst.Actions.Phone == nil && src.Actions.Phone != nil {
		dst.Actions.Phone = src.Actions.Phone
		filled = append(filled, "phone")
	}
	if dst.Actions.MapsURL == nil && src.Actions.MapsURL != nil {
		dst.Actions.MapsURL = src.Actions.MapsURL
		filled = append(filled, "maps_url")
	}
	if len(dst.Hours) == 0 && len(src.Hours) > 0 {
		dst.Hours = src.Hours
		filled = append(filled, "hours")
	}

	for _, cat := range src.Categories {
		if !contains(dst.Categories, cat) {
			dst.Categories = append(dst.Categories, cat)
			if !contains(filled, "categories") {
				filled = append(filled, "categories")
			}
		}
	}

	return filled
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
