package model

import "math"

const (
	// MaxValidMapLatitude is the maximum latitude representable in the
	// Mercator projection used by web maps. Coordinates above it are valid
	// on the wire but cannot be rendered.
	MaxValidMapLatitude = 85.05112877

	// MaxHorizontalAccuracy is the server-side limit for a location's
	// accuracy radius, in meters. Higher values are clamped, never rejected.
	MaxHorizontalAccuracy = 1500.0

	// accuracyRadiusMask is the geo point flags bit indicating that the
	// accuracy radius field is present.
	accuracyRadiusMask = 1 << 0
)

// Location is a geographic point plus the access hash issued by the origin
// system.
//
// A location is either valid (finite coordinates within range, accuracy
// within [0, MaxHorizontalAccuracy]) or empty, the empty sentinel stands for
// "no location" and is not an error. Values are immutable once built, the
// zero Location is empty.
type Location struct {
	valid              bool
	latitude           float64
	longitude          float64
	horizontalAccuracy float64
	accessHash         int64
}

// EmptyLocation returns the empty location sentinel.
func EmptyLocation() Location {
	return Location{}
}

// NewLocation builds a location from its components. It never fails: non
// finite or out of range coordinates degrade to the empty sentinel, since
// upstream sources are allowed to report garbage without aborting the whole
// operation.
//
// The accuracy is fixed silently, non finite or negative values become 0 and
// values above MaxHorizontalAccuracy are clamped to it.
func NewLocation(latitude, longitude, horizontalAccuracy float64, accessHash int64) Location {
	if !isFinite(latitude) || !isFinite(longitude) {
		return Location{}
	}
	if math.Abs(latitude) > 90 || math.Abs(longitude) > 180 {
		return Location{}
	}

	return Location{
		valid:              true,
		latitude:           latitude,
		longitude:          longitude,
		horizontalAccuracy: fixAccuracy(horizontalAccuracy),
		accessHash:         accessHash,
	}
}

// fixAccuracy coerces the accuracy radius into [0, MaxHorizontalAccuracy].
func fixAccuracy(accuracy float64) float64 {
	switch {
	case !isFinite(accuracy) || accuracy <= 0:
		return 0
	case accuracy >= MaxHorizontalAccuracy:
		return MaxHorizontalAccuracy
	default:
		return accuracy
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// IsEmpty reports whether the location is the empty sentinel.
func (l Location) IsEmpty() bool {
	return !l.valid
}

// IsValidMapPoint reports whether the location can be rendered on a map,
// which requires a tighter latitude bound than wire validity.
func (l Location) IsValidMapPoint() bool {
	return l.valid && math.Abs(l.latitude) <= MaxValidMapLatitude
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// HorizontalAccuracy returns the accuracy radius in meters, 0 means the
// accuracy is not specified.
func (l Location) HorizontalAccuracy() float64 {
	return l.horizontalAccuracy
}

// AccessHash returns the correlation token issued by the origin system, it
// is carried through unchanged.
func (l Location) AccessHash() int64 {
	return l.accessHash
}

// WithAccessHash returns a copy of the location carrying the hash received.
func (l Location) WithAccessHash(hash int64) Location {
	l.accessHash = hash
	return l
}

// GeoPoint is the wire form of a location, consumed by the protocol encoder.
//
// The empty location is encoded as a distinct sentinel variant carrying no
// coordinates (Empty set, everything else zero).
type GeoPoint struct {
	AccuracyRadius *int32  `json:"accuracy_radius,omitempty"`
	Latitude       float64 `json:"lat"`
	Longitude      float64 `json:"long"`
	Flags          int32   `json:"flags"`
	Empty          bool    `json:"empty,omitempty"`
}

// GeoPoint returns the location's wire projection.
func (l Location) GeoPoint() GeoPoint {
	if !l.valid {
		return GeoPoint{Empty: true}
	}

	point := GeoPoint{
		Latitude:  l.latitude,
		Longitude: l.longitude,
	}
	if l.horizontalAccuracy > 0 {
		radius := int32(math.Ceil(l.horizontalAccuracy))
		point.Flags |= accuracyRadiusMask
		point.AccuracyRadius = &radius
	}
	return point
}

// MapPoint is a renderable point returned to API consumers.
type MapPoint struct {
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	HorizontalAccuracy float64 `json:"horizontal_accuracy"`
}

// MapPoint returns the location as a renderable point, or nil if it's empty.
func (l Location) MapPoint() *MapPoint {
	if !l.valid {
		return nil
	}
	return &MapPoint{
		Latitude:           l.latitude,
		Longitude:          l.longitude,
		HorizontalAccuracy: l.horizontalAccuracy,
	}
}
