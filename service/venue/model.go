package venue

import (
	"time"

	"github.com/GGP1/pinpoint/model"

	"github.com/pkg/errors"
)

// Venue represents a registered venue.
//
// Use pointers to distinguish default values.
type Venue struct {
	ID                 string     `json:"id,omitempty"`
	Title              string     `json:"title,omitempty"`
	Address            string     `json:"address,omitempty"`
	Provider           string     `json:"provider,omitempty"`
	ProviderID         string     `json:"provider_id,omitempty" db:"provider_id"`
	Type               string     `json:"type,omitempty"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	HorizontalAccuracy float64    `json:"horizontal_accuracy,omitempty" db:"horizontal_accuracy"`
	AccessHash         int64      `json:"access_hash,omitempty" db:"access_hash"`
	CreatedAt          *time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// CreateVenue is the structure used to register a venue.
type CreateVenue struct {
	Title              string  `json:"title,omitempty"`
	Address            string  `json:"address,omitempty"`
	Provider           string  `json:"provider,omitempty"`
	ProviderID         string  `json:"provider_id,omitempty"`
	Type               string  `json:"type,omitempty"`
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	HorizontalAccuracy float64 `json:"horizontal_accuracy,omitempty"`
	AccessHash         int64   `json:"access_hash,omitempty"`
}

// Validate cleans the fields received and returns the resulting domain
// venue, or an error if any of them is rejected.
func (c CreateVenue) Validate() (model.Venue, error) {
	location := model.NewLocation(c.Latitude, c.Longitude, c.HorizontalAccuracy, c.AccessHash)
	return model.ValidateVenue(location, c.Title, c.Address, c.Provider, c.ProviderID, c.Type)
}

// UpdateVenue is the struct used to update venues.
//
// Use pointers to distinguish default values.
type UpdateVenue struct {
	Title   *string `json:"title,omitempty"`
	Address *string `json:"address,omitempty"`
	Type    *string `json:"type,omitempty"`
}

// Validate verifies if the update received is valid.
func (u UpdateVenue) Validate() error {
	if u.Title == nil && u.Address == nil && u.Type == nil {
		return errors.New("no fields to update")
	}
	if u.Title != nil && *u.Title == "" {
		return errors.New("title required")
	}
	return nil
}
