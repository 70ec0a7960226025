package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name         string
		place        string
		neighborhood string
		want         string
	}{
		{
			name:         "accented name with neighborhood",
			place:        "Café Deluxe",
			neighborhood: "Al Khuwair",
			want:         "cafe-deluxe-al-khuwair",
		},
		{
			name:  "plain ascii",
			place: "Turkish House",
			want:  "turkish-house",
		},
		{
			name:  "symbols only",
			place: "***",
			want:  "",
		},
		{
			name:  "empty input",
			place: "",
			want:  "",
		},
		{
			name:  "surrounding whitespace trimmed",
			place: "  Bait Al Luban  ",
			want:  "bait-al-luban",
		},
		{
			name:  "punctuation runs collapse to one hyphen",
			place: "Fish & Chips -- Seafront",
			want:  "fish-chips-seafront",
		},
		{
			name:  "digits preserved",
			place: "Grill 101",
			want:  "grill-101",
		},
		{
			name:  "non-latin characters dropped not substituted",
			place: "مطعم Zahr",
			want:  "zahr",
		},
		{
			name:  "decomposable unicode transliterated",
			place: "Crêperie Ångström",
			want:  "creperie-angstrom",
		},
		{
			name:         "neighborhood only",
			place:        "",
			neighborhood: "Qurum",
			want:         "qurum",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.place, tc.neighborhood))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Cafe Deluxe", "Grill 101", "turkish house", "a b c 9"}
	for _, in := range inputs {
		once := Slugify(in, "")
		assert.Equal(t, once, Slugify(once, ""), "slugify should be idempotent for %q", in)
	}
}
