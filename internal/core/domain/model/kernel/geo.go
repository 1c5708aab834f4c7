package kernel

import (
	"errors"
	"fmt"

	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// Valid bounds for WGS84 coordinates.
const (
	GeoPointMinLat float64 = -90
	GeoPointMaxLat float64 = 90
	GeoPointMinLng float64 = -180
	GeoPointMaxLng float64 = 180
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly initialized GeoPoint.
// GeoPoints must be created using the NewGeoPoint constructor to ensure validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position as a latitude/longitude pair.
// GeoPoint is an immutable value object that ensures coordinates are always
// within valid WGS84 bounds. The zero value of GeoPoint is invalid and will
// fail validation - use the constructor to create instances.
//
// Example:
//
//	pt, err := kernel.NewGeoPoint(12.9716, 77.5946)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Position: %s", pt) // Output: GeoPoint(12.971600,77.594600)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a new GeoPoint with the specified coordinates.
// Latitude must be within [GeoPointMinLat..GeoPointMaxLat] and longitude
// within [GeoPointMinLng..GeoPointMaxLng]. Returns an error if either
// coordinate is outside the valid bounds.
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	pt := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(pt.setLat(lat), pt.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return pt, nil
}

// Validate checks if the GeoPoint was properly constructed using the constructor.
// The zero value of GeoPoint is invalid and will fail this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in decimal degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// String returns a human-readable representation in the format "GeoPoint(lat,lng)".
// This method implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lng)
}

// IsEqual compares two geo points for equality.
// Two points are considered equal if they have the same latitude and longitude.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// setLat sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Pointer receivers on these private setters enable self-encapsulated validation
// of business requirements during object construction.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoPointMinLat || lat > GeoPointMaxLat {
		return errs.NewValueIsOutOfRangeError("lat", lat, GeoPointMinLat, GeoPointMaxLat)
	}

	p.lat = lat
	return nil
}

// setLng sets the longitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use value receivers.
// Pointer receivers on these private setters enable self-encapsulated validation
// of business requirements during object construction.
func (p *GeoPoint) setLng(lng float64) error {
	if lng < GeoPointMinLng || lng > GeoPointMaxLng {
		return errs.NewValueIsOutOfRangeError("lng", lng, GeoPointMinLng, GeoPointMaxLng)
	}

	p.lng = lng
	return nil
}
