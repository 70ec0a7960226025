package stage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muscat-guide/places-cli/internal/model"
)

func encodePlaces(t *testing.T, places []model.Place) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(places))
	for i, p := range places {
		raw, err := json.Marshal(p)
		require.NoError(t, err)
		out[i] = raw
	}
	return out
}

func decodePlaces(t *testing.T, records []json.RawMessage) []model.Place {
	t.Helper()
	out := make([]model.Place, len(records))
	for i, rec := range records {
		require.NoError(t, json.Unmarshal(rec, &out[i]))
	}
	return out
}

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func TestDedupeMergeCollapsesNearbySameSlug(t *testing.T) {
	in := encodePlaces(t, []model.Place{
		{
			ID: "a", Slug: "cafe-deluxe", Name: "Cafe Deluxe",
			Location:   model.Location{Lat: f(23.6000), Lng: f(58.5000)},
			Provenance: []model.Provenance{model.NewProvenance("osm", nil, []string{"name"})},
		},
		{
			ID: "b", Slug: "cafe-deluxe", Name: "Cafe Deluxe",
			Location: model.Location{Lat: f(23.6001), Lng: f(58.5001), Address: s("18th November St")},
			Actions:  model.Actions{Phone: s("+968 2460 0000")},
		},
	})

	out, err := DedupeMerge(0.001)(in)
	require.NoError(t, err)
	require.Len(t, out, 1)

	p := decodePlaces(t, out)[0]
	assert.Equal(t, "a", p.ID)
	require.NotNil(t, p.Location.Address)
	assert.Equal(t, "18th November St", *p.Location.Address)
	require.NotNil(t, p.Actions.Phone)

	// Merge appended a provenance entry; the original is untouched.
	require.Len(t, p.Provenance, 2)
	assert.Equal(t, "osm", p.Provenance[0].Provider)
	assert.Equal(t, StageDedupeMerge, p.Provenance[1].Stage)
	assert.Contains(t, p.Provenance[1].Fields, "address")
	assert.Contains(t, p.Provenance[1].Fields, "phone")
}

func TestDedupeMergeKeepsDistantSameSlug(t *testing.T) {
	in := encodePlaces(t, []model.Place{
		{ID: "a", Slug: "corner-cafe", Location: model.Location{Lat: f(23.60), Lng: f(58.50)}},
		{ID: "b", Slug: "corner-cafe", Location: model.Location{Lat: f(23.70), Lng: f(58.60)}},
	})

	out, err := DedupeMerge(0.001)(in)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestDedupeMergeDifferentSlugsNeverMerge(t *testing.T) {
	in := encodePlaces(t, []model.Place{
		{ID: "a", Slug: "cafe-one", Location: model.Location{Lat: f(23.6), Lng: f(58.5)}},
		{ID: "b", Slug: "cafe-two", Location: model.Location{Lat: f(23.6), Lng: f(58.5)}},
	})

	out, err := DedupeMerge(0.001)(in)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestDedupeMergeEmptySlugNeverMerges(t *testing.T) {
	in := encodePlaces(t, []model.Place{
		{ID: "a", Slug: ""},
		{ID: "b", Slug: ""},
	})

	out, err := DedupeMerge(0.001)(in)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestDedupeMergeMissingCoordinatesMatchOnSlug(t *testing.T) {
	in := encodePlaces(t, []model.Place{
		{ID: "a", Slug: "bait-al-luban"},
		{ID: "b", Slug: "bait-al-luban", Location: model.Location{Lat: f(23.61), Lng: f(58.56)}},
	})

	out, err := DedupeMerge(0.001)(in)
	require.NoError(t, err)
	require.Len(t, out, 1)

	p := decodePlaces(t, out)[0]
	assert.Equal(t, "a", p.ID)
	require.NotNil(t, p.Location.Lat)
	assert.InDelta(t, 23.61, *p.Location.Lat, 1e-9)
}

func TestDedupeMergePreservesOrder(t *testing.T) {
	in := encodePlaces(t, []model.Place{
		{ID: "a", Slug: "one"},
		{ID: "b", Slug: "two"},
		{ID: "c", Slug: "one"},
		{ID: "d", Slug: "three"},
	})

	out, err := DedupeMerge(0.001)(in)
	require.NoError(t, err)
	places := decodePlaces(t, out)
	require.Len(t, places, 3)
	assert.Equal(t, "a", places[0].ID)
	assert.Equal(t, "b", places[1].ID)
	assert.Equal(t, "d", places[2].ID)
}

func TestDedupeMergeRejectsMalformedRecord(t *testing.T) {
	_, err := DedupeMerge(0.001)([]json.RawMessage{json.RawMessage(`"not an object"`)})
	require.Error(t, err)
}
