// Package cache defines the client used to store frequently requested
// objects and the keys they are stored under.
package cache

const (
	venuesSuffix = ":venues"
	lookupSuffix = ":lookup"
)

// Client is the interface for a cache client.
type Client interface {
	Delete(key string) error
	Get(key string) ([]byte, error)
	Miss(err error) bool
	Set(key string, value []byte) error
}

// VenuesKey returns the key a venue record is cached under.
func VenuesKey(venueID string) string {
	return venueID + venuesSuffix
}

// LookupKey returns the key the provider/id index of a venue is cached
// under.
func LookupKey(provider, providerID string) string {
	return provider + ":" + providerID + lookupSuffix
}
