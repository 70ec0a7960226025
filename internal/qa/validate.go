// Package qa holds editorial quality checks run against the converged
// place dataset: schema validation and the missing-fields report.
package qa

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/muscat-guide/places-cli/internal/dataset"
	"github.com/muscat-guide/places-cli/internal/model"
)

var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate loads the dataset at path and checks every place against
// the canonical schema. It returns one human-readable violation per
// problem, each keyed by the offending entry. A missing or malformed
// dataset file is an error; an empty violation list means the dataset
// passed.
func Validate(path string) ([]string, error) {
	entries, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}

	var violations []string
	slugSeen := map[string]int{}

	for i, raw := range entries {
		var p model.Place
		if err := json.Unmarshal(raw, &p); err != nil {
			violations = append(violations, fmt.Sprintf("[idx:%d] not a place record: %v", i, err))
			continue
		}
		key := p.Slug
		if key == "" {
			key = fmt.Sprintf("idx:%d", i)
		}

		if p.ID == "" {
			violations = append(violations, fmt.Sprintf("[%s] missing id", key))
		}
		if p.Slug == "" {
			violations = append(violations, fmt.Sprintf("[%s] missing slug", key))
		} else {
			slugSeen[p.Slug]++
		}
		if p.Name == "" {
			violations = append(violations, fmt.Sprintf("[%s] missing name", key))
		}

		if p.Location.Lat != nil && (*p.Location.Lat < -90 || *p.Location.Lat > 90) {
			violations = append(violations, fmt.Sprintf("[%s] lat out of range: %v", key, *p.Location.Lat))
		}
		if p.Location.Lng != nil && (*p.Location.Lng < -180 || *p.Location.Lng > 180) {
			violations = append(violations, fmt.Sprintf("[%s] lng out of range: %v", key, *p.Location.Lng))
		}

		if len(p.Provenance) == 0 {
			violations = append(violations, fmt.Sprintf("[%s] missing provenance", key))
		}
		for j, prov := range p.Provenance {
			if prov.Provider == "" {
				violations = append(violations, fmt.Sprintf("[%s] provenance %d missing provider", key, j))
			}
			if !dateOnlyRe.MatchString(prov.CollectedAt) {
				violations = append(violations, fmt.Sprintf("[%s] provenance %d bad collected_at %q", key, j, prov.CollectedAt))
			}
		}

		if p.Menu != nil {
			switch p.Menu.Status {
			case model.MenuStatusPlaceholder, model.MenuStatusScraped, model.MenuStatusVerified:
			default:
				violations = append(violations, fmt.Sprintf("[%s] bad menu status %q", key, p.Menu.Status))
			}
		}
	}

	for slug, n := range slugSeen {
		if n > 1 {
			violations = append(violations, fmt.Sprintf("[%s] slug used by %d entries", slug, n))
		}
	}

	return violations, nil
}
