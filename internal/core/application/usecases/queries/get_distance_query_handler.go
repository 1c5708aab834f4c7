package queries

import (
	"context"
	"database/sql"
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDistanceQueryHandler computes remaining road distance via the distance
// provider. Unlike reverse geocoding there is no degraded answer here: a
// provider failure surfaces as an error because a wrong distance is worse
// than none.
type GetDistanceQueryHandler struct {
	db       *gorm.DB
	provider ports.DistanceProvider
}

// NewGetDistanceQueryHandler creates a handler for remaining distance queries.
func NewGetDistanceQueryHandler(db *gorm.DB, provider ports.DistanceProvider) GetDistanceQueryHandler {
	return GetDistanceQueryHandler{db: db, provider: provider}
}

// Handle executes the distance lookup.
// Requires both current and delivery coordinates on the parcel.
func (h GetDistanceQueryHandler) Handle(
	ctx context.Context,
	query GetDistanceQuery,
) (GetDistanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDistanceQueryResponse{}, err
	}

	var currentLat, currentLng, deliveryLat, deliveryLng sql.NullFloat64

	row := h.db.WithContext(ctx).Raw(`
		SELECT current_lat, current_lng, delivery_lat, delivery_lng
		FROM parcels
		WHERE id = ?
	`, query.ParcelID().Bytes()).Row()

	err := row.Scan(&currentLat, &currentLng, &deliveryLat, &deliveryLng)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDistanceQueryResponse{}, errs.NewObjectNotFoundError(
				"parcelId", query.ParcelID())
		}
		return GetDistanceQueryResponse{}, err
	}

	if !currentLat.Valid || !currentLng.Valid {
		return GetDistanceQueryResponse{}, errs.NewValueIsRequiredError("currentLocation")
	}
	if !deliveryLat.Valid || !deliveryLng.Valid {
		return GetDistanceQueryResponse{}, errs.NewValueIsRequiredError("deliveryLocation")
	}

	origin, err := kernel.NewGeoPoint(currentLat.Float64, currentLng.Float64)
	if err != nil {
		return GetDistanceQueryResponse{}, err
	}
	destination, err := kernel.NewGeoPoint(deliveryLat.Float64, deliveryLng.Float64)
	if err != nil {
		return GetDistanceQueryResponse{}, err
	}

	distance, err := h.provider.Distance(ctx, origin, destination)
	if err != nil {
		return GetDistanceQueryResponse{}, err
	}

	return GetDistanceQueryResponse{
		ParcelID: query.ParcelID(),
		Distance: distance,
	}, nil
}
