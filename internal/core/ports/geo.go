package ports

import (
	"context"

	"courier/internal/core/domain/model/kernel"
)

// Sentinel location names returned by GeocodeResolver implementations.
// Tracking display must never fail because geocoding is down, so resolvers
// degrade to these values instead of propagating errors.
const (
	// UnknownLocationName is returned when the geocoding service answered
	// but had no result for the coordinates.
	UnknownLocationName = "Unknown Location"

	// LocationUnavailableName is returned when the geocoding service was
	// unreachable or returned malformed data.
	LocationUnavailableName = "Location unavailable"
)

// GeocodeResolver converts coordinates to a human-readable address.
// Pure lookup, no state.
type GeocodeResolver interface {
	// Resolve returns the address for the given point. It never fails:
	// on an empty result set it returns UnknownLocationName, on a
	// transport or service error it returns LocationUnavailableName.
	Resolve(ctx context.Context, point kernel.GeoPoint) string
}

// DistanceProvider looks up the road distance between two coordinate pairs.
// Unlike geocoding there is no sentinel fallback: the remaining distance
// feature has no meaningful degraded value, so failures propagate as
// ExternalServiceError for the caller to see explicitly.
type DistanceProvider interface {
	// Distance returns the provider's human-readable distance text,
	// e.g. "23.4 km".
	Distance(ctx context.Context, origin, destination kernel.GeoPoint) (string, error)
}
