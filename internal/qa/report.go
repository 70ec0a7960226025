package qa

import (
	"encoding/json"
	"sort"

	"github.com/muscat-guide/places-cli/internal/dataset"
	"github.com/muscat-guide/places-cli/internal/model"
)

// requiredFields lists, per primary category, the fields editors are
// expected to fill before a place page goes live.
var requiredFields = map[string][]string{
	"Restaurants": {"cuisines", "price_range", "hours"},
	"Hotels":      {"price_range", "hours"},
	"Schools":     {"hours"},
	"Spas":        {"hours"},
	"Clinics":     {"hours"},
	"Malls":       {"hours"},
}

// MissingFields maps a place slug to the required fields it lacks,
// judged by the entry's primary (first) category.
type MissingFields map[string][]string

// Report loads the dataset at path and returns the incomplete entries.
// Entries that do not parse as places are ignored; this is an
// editorial report, not a validator.
func Report(path string) (MissingFields, error) {
	entries, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}

	report := MissingFields{}
	for _, raw := range entries {
		var p model.Place
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}

		primary := ""
		if len(p.Categories) > 0 {
			primary = p.Categories[0]
		}

		var missing []string
		for _, field := range requiredFields[primary] {
			switch field {
			case "cuisines":
				if len(p.Cuisines) == 0 {
					missing = append(missing, field)
				}
			case "price_range":
				if p.PriceRange == "" {
					missing = append(missing, field)
				}
			case "hours":
				if len(p.Hours) == 0 {
					missing = append(missing, field)
				}
			}
		}
		if len(missing) > 0 {
			report[p.Slug] = missing
		}
	}
	return report, nil
}

// Slugs returns the report's keys in stable order.
func (m MissingFields) Slugs() []string {
	slugs := make([]string, 0, len(m))
	for slug := range m {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
