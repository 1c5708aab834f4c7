package queries

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var (
	ErrGetCurrentLocationQueryIsNotConstructed = errors.New(
		"GetCurrentLocationQuery must be created via NewGetCurrentLocationQuery constructor",
	)
)

// GetCurrentLocationQuery retrieves a parcel's latest known coordinates.
type GetCurrentLocationQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCurrentLocationQuery creates a current location query for a parcel.
func NewGetCurrentLocationQuery(parcelID kernel.UUID) (GetCurrentLocationQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetCurrentLocationQuery{}, errs.NewValueIsRequiredErrorWithCause("parcelID", err)
	}
	return GetCurrentLocationQuery{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetCurrentLocationQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// Validate ensures the query was created through the constructor.
func (q GetCurrentLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentLocationQueryIsNotConstructed)
}

// GetCurrentLocationQueryResponse carries the latest known coordinates.
// Point stays nil when the parcel was booked without pickup coordinates and
// no ping has arrived yet.
type GetCurrentLocationQueryResponse struct {
	ParcelID kernel.UUID
	Point    *kernel.GeoPoint
}
