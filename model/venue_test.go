package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateVenue(t *testing.T) {
	loc := NewLocation(55.7558, 37.6173, 10, 0)

	t.Run("Valid", func(t *testing.T) {
		venue, err := ValidateVenue(loc,
			"Cafe\x00Pushkin",
			"Pushkin Square, Moscow",
			"foursquare",
			"4b5f1faf8f7766efd8e60cb7",
			"Restaurant",
		)
		assert.NoError(t, err)
		assert.False(t, venue.Empty())
		// The sanitized value is stored, not the raw input
		assert.Equal(t, "Cafe Pushkin", venue.Title())
		assert.Equal(t, "Pushkin Square, Moscow", venue.Address())
		assert.Equal(t, "foursquare", venue.Provider())
		assert.Equal(t, "4b5f1faf8f7766efd8e60cb7", venue.ID())
		assert.Equal(t, "Restaurant", venue.Type())
		assert.Equal(t, loc, venue.Location())
	})

	t.Run("Empty location", func(t *testing.T) {
		// The location is checked before any string, valid strings don't matter
		_, err := ValidateVenue(EmptyLocation(), "Title", "Address", "foursquare", "id", "type")
		assert.ErrorIs(t, err, ErrInvalidLocation)

		_, err = ValidateVenue(NewLocation(91, 0, 0, 0), "Title", "Address", "foursquare", "id", "type")
		assert.ErrorIs(t, err, ErrInvalidLocation)
	})

	t.Run("Invalid UTF-8", func(t *testing.T) {
		invalid := "\xFF\xFE"
		cases := []struct {
			desc                                  string
			title, address, provider, id, venueType string
			expected                              error
		}{
			{desc: "Title", title: invalid, expected: ErrInvalidTitle},
			{desc: "Address", address: invalid, expected: ErrInvalidAddress},
			{desc: "Provider", provider: invalid, expected: ErrInvalidProvider},
			{desc: "ID", id: invalid, expected: ErrInvalidID},
			{desc: "Type", venueType: invalid, expected: ErrInvalidType},
		}

		for _, tc := range cases {
			t.Run(tc.desc, func(t *testing.T) {
				_, err := ValidateVenue(loc, tc.title, tc.address, tc.provider, tc.id, tc.venueType)
				assert.ErrorIs(t, err, tc.expected)
			})
		}
	})
}

func TestVenueEmpty(t *testing.T) {
	venue := NewVenue(NewLocation(55, 37, 0, 0), "Title", "Address", "foursquare", "id", "type")
	assert.False(t, venue.Empty())

	venue = NewVenue(EmptyLocation(), "Title", "Address", "foursquare", "id", "type")
	assert.True(t, venue.Empty())
}

func TestSameProviderID(t *testing.T) {
	loc := NewLocation(55, 37, 0, 0)
	venue := NewVenue(loc, "Kremlin", "Moscow", "foursquare", "abc123", "monument")

	cases := []struct {
		desc     string
		other    Venue
		expected bool
	}{
		{
			desc:     "Same place, different title",
			other:    NewVenue(NewLocation(55.001, 37.001, 0, 0), "Кремль", "Moscow, Russia", "foursquare", "abc123", "landmark"),
			expected: true,
		},
		{
			desc:     "Different id",
			other:    NewVenue(loc, "Kremlin", "Moscow", "foursquare", "abc124", "monument"),
			expected: false,
		},
		{
			desc:     "Different provider",
			other:    NewVenue(loc, "Kremlin", "Moscow", "gplaces", "abc123", "monument"),
			expected: false,
		},
		{
			desc:     "Case-sensitive",
			other:    NewVenue(loc, "Kremlin", "Moscow", "foursquare", "ABC123", "monument"),
			expected: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, venue.SameProviderID(tc.other))
		})
	}
}

func TestVenueEquality(t *testing.T) {
	loc := NewLocation(55, 37, 10, 0)
	a := NewVenue(loc, "Title", "Address", "foursquare", "id", "type")
	b := NewVenue(loc, "Title", "Address", "foursquare", "id", "type")
	assert.Equal(t, a, b)
	assert.True(t, a == b)

	c := NewVenue(loc.WithAccessHash(1), "Title", "Address", "foursquare", "id", "type")
	assert.NotEqual(t, a, c)
}

func TestWireVenue(t *testing.T) {
	loc := NewLocation(55.7558, 37.6173, 10, 0)
	venue, err := ValidateVenue(loc, "Cafe Pushkin", "Pushkin Square", "foursquare", "abc123", "restaurant")
	assert.NoError(t, err)

	wire := venue.WireVenue()
	assert.Equal(t, "Cafe Pushkin", wire.Title)
	assert.Equal(t, "Pushkin Square", wire.Address)
	assert.Equal(t, "foursquare", wire.Provider)
	assert.Equal(t, "abc123", wire.ID)
	assert.Equal(t, "restaurant", wire.Type)
	assert.Equal(t, loc.GeoPoint(), wire.Point)
	assert.False(t, wire.Point.Empty)
}
