package model

import (
	"github.com/GGP1/pinpoint/internal/sanitize"

	"github.com/pkg/errors"
)

// Venue validation errors. String field errors are raised only on invalid
// UTF-8 input, a control-character-laden but well encoded string is always
// accepted after cleaning.
var (
	ErrInvalidLocation = errors.New("venue location must be non-empty")
	ErrInvalidTitle    = errors.New("invalid venue title")
	ErrInvalidAddress  = errors.New("invalid venue address")
	ErrInvalidProvider = errors.New("invalid venue provider")
	ErrInvalidID       = errors.New("invalid venue id")
	ErrInvalidType     = errors.New("invalid venue type")
)

// Venue is a described place anchored to a geographic point.
//
// A venue built through ValidateVenue holds sanitized strings and a
// non-empty location, no partially validated value is ever exposed. Values
// are immutable once built and compared by ==, two venues refer to the same
// real-world place when their provider and id match, see SameProviderID.
type Venue struct {
	title     string
	address   string
	provider  string
	id        string
	venueType string
	location  Location
}

// NewVenue builds a venue without validating its fields. It is meant for
// data that was already validated, like values round-tripped from storage.
func NewVenue(location Location, title, address, provider, id, venueType string) Venue {
	return Venue{
		location:  location,
		title:     title,
		address:   address,
		provider:  provider,
		id:        id,
		venueType: venueType,
	}
}

// ValidateVenue builds a venue from untrusted input.
//
// The location must be non-empty and every string field is sanitized
// independently, the venue holds the sanitized values, not the raw inputs.
// The first failure wins and is reported with the field's error.
func ValidateVenue(location Location, title, address, provider, id, venueType string) (Venue, error) {
	if location.IsEmpty() {
		return Venue{}, ErrInvalidLocation
	}

	fields := []struct {
		dst *string
		in  string
		err error
	}{
		{dst: &title, in: title, err: ErrInvalidTitle},
		{dst: &address, in: address, err: ErrInvalidAddress},
		{dst: &provider, in: provider, err: ErrInvalidProvider},
		{dst: &id, in: id, err: ErrInvalidID},
		{dst: &venueType, in: venueType, err: ErrInvalidType},
	}
	for _, f := range fields {
		cleaned, err := sanitize.Clean(f.in)
		if err != nil {
			return Venue{}, f.err
		}
		*f.dst = cleaned
	}

	return NewVenue(location, title, address, provider, id, venueType), nil
}

// Empty reports whether the venue's location is empty.
func (v Venue) Empty() bool {
	return v.location.IsEmpty()
}

// SameProviderID reports whether both venues refer to the same place in the
// same provider's database. The comparison is exact and case-sensitive,
// other fields are not considered.
func (v Venue) SameProviderID(other Venue) bool {
	return v.provider == other.provider && v.id == other.id
}

// Location returns the venue's location.
func (v Venue) Location() Location {
	return v.location
}

// Title returns the venue's name.
func (v Venue) Title() string {
	return v.title
}

// Address returns the venue's address.
func (v Venue) Address() string {
	return v.address
}

// Provider returns the database the venue comes from, like "foursquare" or
// "gplaces".
func (v Venue) Provider() string {
	return v.provider
}

// ID returns the venue's id in the provider's database.
func (v Venue) ID() string {
	return v.id
}

// Type returns the venue's category, like "restaurant".
func (v Venue) Type() string {
	return v.venueType
}

// WireVenue is the wire form of a venue, consumed by the protocol encoder.
type WireVenue struct {
	Title    string   `json:"title"`
	Address  string   `json:"address"`
	Provider string   `json:"provider"`
	ID       string   `json:"venue_id"`
	Type     string   `json:"venue_type"`
	Point    GeoPoint `json:"geo_point"`
}

// WireVenue returns the venue's wire projection.
func (v Venue) WireVenue() WireVenue {
	return WireVenue{
		Point:    v.location.GeoPoint(),
		Title:    v.title,
		Address:  v.address,
		Provider: v.provider,
		ID:       v.id,
		Type:     v.venueType,
	}
}
