package queries

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

var (
	ErrGetCustomerParcelsQueryIsNotConstructed = errors.New(
		"GetCustomerParcelsQuery must be created via NewGetCustomerParcelsQuery constructor",
	)
)

// GetCustomerParcelsQuery lists the booking history of one customer.
type GetCustomerParcelsQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCustomerParcelsQuery creates a booking history query for a customer.
func NewGetCustomerParcelsQuery(customerID kernel.UUID) (GetCustomerParcelsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerParcelsQuery{}, errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	return GetCustomerParcelsQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetCustomerParcelsQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// Validate ensures the query was created through the constructor.
func (q GetCustomerParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerParcelsQueryIsNotConstructed)
}

// GetCustomerParcelsQueryResponse is one row of a customer's booking history.
type GetCustomerParcelsQueryResponse struct {
	ID              kernel.UUID
	TrackingNumber  string
	Status          string
	PaymentType     string
	ParcelSize      string
	PickupAddress   string
	DeliveryAddress string
	CreatedAt       time.Time
}
