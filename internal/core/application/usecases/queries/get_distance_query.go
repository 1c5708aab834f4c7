package queries

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var (
	ErrGetDistanceQueryIsNotConstructed = errors.New(
		"GetDistanceQuery must be created via NewGetDistanceQuery constructor",
	)
)

// GetDistanceQuery computes the remaining road distance for a parcel, from
// its current position to the delivery point.
type GetDistanceQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDistanceQuery creates a remaining distance query for a parcel.
func NewGetDistanceQuery(parcelID kernel.UUID) (GetDistanceQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetDistanceQuery{}, errs.NewValueIsRequiredErrorWithCause("parcelID", err)
	}
	return GetDistanceQuery{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetDistanceQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// Validate ensures the query was created through the constructor.
func (q GetDistanceQuery) Validate() error {
	return q.guard.Validate(ErrGetDistanceQueryIsNotConstructed)
}

// GetDistanceQueryResponse carries the provider's human-readable distance
// text, e.g. "12.4 km".
type GetDistanceQueryResponse struct {
	ParcelID kernel.UUID
	Distance string
}
