package qa

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "places.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validPlace = `{
	"id": "3f3e9d3a-0000-0000-0000-000000000001",
	"slug": "cafe-deluxe",
	"name": "Cafe Deluxe",
	"categories": ["Restaurants"],
	"location": {"lat": 23.6, "lng": 58.5, "address": null, "neighborhood": null},
	"actions": {"website": null, "phone": null, "maps_url": null},
	"hours": {},
	"provenance": [{"provider": "osm", "place_id": null, "fields": ["name"], "terms_url": null, "collected_at": "2026-08-30"}]
}`

func TestValidatePasses(t *testing.T) {
	path := writeDataset(t, "["+validPlace+"]")

	violations, err := Validate(path)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateFindsViolations(t *testing.T) {
	tests := []struct {
		name    string
		dataset string
		want    string
	}{
		{
			name:    "missing id and name",
			dataset: `[{"slug":"x","provenance":[{"provider":"osm","collected_at":"2026-08-30"}]}]`,
			want:    "missing id",
		},
		{
			name:    "lat out of range",
			dataset: `[{"id":"1","slug":"x","name":"X","location":{"lat":123.0},"provenance":[{"provider":"osm","collected_at":"2026-08-30"}]}]`,
			want:    "lat out of range",
		},
		{
			name:    "missing provenance",
			dataset: `[{"id":"1","slug":"x","name":"X"}]`,
			want:    "missing provenance",
		},
		{
			name:    "bad collected_at",
			dataset: `[{"id":"1","slug":"x","name":"X","provenance":[{"provider":"osm","collected_at":"30/08/2026"}]}]`,
			want:    "bad collected_at",
		},
		{
			name:    "bad menu status",
			dataset: `[{"id":"1","slug":"x","name":"X","menu":{"status":"draft"},"provenance":[{"provider":"osm","collected_at":"2026-08-30"}]}]`,
			want:    "bad menu status",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeDataset(t, tc.dataset)
			violations, err := Validate(path)
			require.NoError(t, err)
			require.NotEmpty(t, violations)

			found := false
			for _, v := range violations {
				if strings.Contains(v, tc.want) {
					found = true
				}
			}
			assert.True(t, found, "expected a violation containing %q, got %v", tc.want, violations)
		})
	}
}

func TestValidateDuplicateSlugs(t *testing.T) {
	path := writeDataset(t, `[
		{"id":"1","slug":"same","name":"A","provenance":[{"provider":"osm","collected_at":"2026-08-30"}]},
		{"id":"2","slug":"same","name":"B","provenance":[{"provider":"osm","collected_at":"2026-08-30"}]}
	]`)

	violations, err := Validate(path)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0], "slug used by 2 entries")
}

func TestValidateMissingFileIsFatal(t *testing.T) {
	_, err := Validate(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestReport(t *testing.T) {
	path := writeDataset(t, `[
		{"id":"1","slug":"resto","name":"R","categories":["Restaurants"],"hours":{"mon":"9-5"}},
		{"id":"2","slug":"hotel","name":"H","categories":["Hotels"],"price_range":"$$","hours":{"mon":"0-24"}},
		{"id":"3","slug":"school","name":"S","categories":["Schools"]}
	]`)

	report, err := Report(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"cuisines", "price_range"}, report["resto"])
	assert.NotContains(t, report, "hotel")
	assert.Equal(t, []string{"hours"}, report["school"])
	assert.Equal(t, []string{"resto", "school"}, report.Slugs())
}

func TestReportUnknownCategoryHasNoRequirements(t *testing.T) {
	path := writeDataset(t, `[{"id":"1","slug":"misc","name":"M","categories":["Parks"]}]`)

	report, err := Report(path)
	require.NoError(t, err)
	assert.Empty(t, report)
}
