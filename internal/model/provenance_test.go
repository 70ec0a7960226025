package model

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func TestNewProvenance(t *testing.T) {
	p := NewProvenance("osm", nil, []string{"name", "lat"})

	assert.Equal(t, "osm", p.Provider)
	assert.Nil(t, p.PlaceID)
	assert.Equal(t, []string{"name", "lat"}, p.Fields)
	assert.Nil(t, p.TermsURL)
	assert.Regexp(t, dateOnly, p.CollectedAt)
	assert.Empty(t, p.Stage)
}

func TestNewProvenanceWithPlaceID(t *testing.T) {
	id := "ChIJxyz"
	p := NewProvenance("google", &id, []string{"name"})

	require.NotNil(t, p.PlaceID)
	assert.Equal(t, "ChIJxyz", *p.PlaceID)
}
