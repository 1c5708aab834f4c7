package queries

import (
	"context"
	"database/sql"
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCurrentLocationQueryHandler reads a parcel's latest coordinates.
type GetCurrentLocationQueryHandler struct {
	db *gorm.DB
}

// NewGetCurrentLocationQueryHandler creates a handler for current location queries.
func NewGetCurrentLocationQueryHandler(db *gorm.DB) GetCurrentLocationQueryHandler {
	return GetCurrentLocationQueryHandler{db: db}
}

// Handle executes the current location lookup.
func (h GetCurrentLocationQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentLocationQuery,
) (GetCurrentLocationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCurrentLocationQueryResponse{}, err
	}

	var lat, lng sql.NullFloat64

	row := h.db.WithContext(ctx).Raw(`
		SELECT current_lat, current_lng
		FROM parcels
		WHERE id = ?
	`, query.ParcelID().Bytes()).Row()

	if err := row.Scan(&lat, &lng); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetCurrentLocationQueryResponse{}, errs.NewObjectNotFoundError(
				"parcelId", query.ParcelID())
		}
		return GetCurrentLocationQueryResponse{}, err
	}

	resp := GetCurrentLocationQueryResponse{ParcelID: query.ParcelID()}
	if lat.Valid && lng.Valid {
		point, err := kernel.NewGeoPoint(lat.Float64, lng.Float64)
		if err != nil {
			return GetCurrentLocationQueryResponse{}, err
		}
		resp.Point = &point
	}

	return resp, nil
}
