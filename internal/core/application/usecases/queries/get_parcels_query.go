package queries

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/guard"
)

var (
	ErrGetParcelsQueryIsNotConstructed = errors.New(
		"GetParcelsQuery must be created via NewGetParcelsQuery constructor",
	)
)

// GetParcelsQuery retrieves the operational parcel listing for dispatchers.
// The optional assigned filter narrows the listing to parcels with or
// without an agent.
type GetParcelsQuery struct {
	assigned *bool

	guard guard.ConstructorGuard
}

// NewGetParcelsQuery creates a parcel listing query.
// Pass nil to list every parcel regardless of assignment.
func NewGetParcelsQuery(assigned *bool) GetParcelsQuery {
	return GetParcelsQuery{
		assigned: assigned,
		guard:    guard.NewConstructorGuard(),
	}
}

func (q GetParcelsQuery) Assigned() *bool {
	return q.assigned
}

// Validate ensures the query was created through the constructor.
func (q GetParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelsQueryIsNotConstructed)
}

// GetParcelsQueryResponse is one row of the dispatcher listing.
// Agent fields come from a join against the agents read table and stay nil
// for unassigned parcels.
type GetParcelsQueryResponse struct {
	ID              kernel.UUID
	TrackingNumber  string
	CustomerID      kernel.UUID
	AgentID         *kernel.UUID
	AgentName       *string
	AgentPhone      *string
	Status          string
	PaymentType     string
	ParcelSize      string
	PickupAddress   string
	DeliveryAddress string
	CreatedAt       time.Time
}
