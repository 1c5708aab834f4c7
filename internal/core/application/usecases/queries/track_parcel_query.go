// Package queries contains read-only operations against the parcel store.
// Query handlers bypass the domain model and read the database directly,
// following the CQRS pattern: writes go through commands and aggregates,
// reads go through raw SQL projections.
package queries

import (
	"errors"
	"time"

	"courier/internal/core/domain/model/parcel"
	"courier/internal/pkg/guard"
)

var (
	ErrTrackParcelQueryIsNotConstructed = errors.New(
		"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
	)
)

// TrackParcelQuery builds the public tracking view for a tracking number.
// This is the one read available without authentication, so it exposes no
// customer or agent identifiers.
//
// Example:
//
//	tn, _ := parcel.TrackingNumberFromString("EXCEL-COURIER-4F7K2M9QX1")
//	query, _ := NewTrackParcelQuery(tn)
//	handler := NewTrackParcelQueryHandler(db, resolver)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("tracking lookup failed: %w", err)
//	}
//	fmt.Printf("%s is %s\n", view.TrackingNumber, view.CurrentStatus)
type TrackParcelQuery struct {
	trackingNumber parcel.TrackingNumber

	guard guard.ConstructorGuard
}

// NewTrackParcelQuery creates a tracking query for the given tracking number.
func NewTrackParcelQuery(trackingNumber parcel.TrackingNumber) (TrackParcelQuery, error) {
	if err := trackingNumber.Validate(); err != nil {
		return TrackParcelQuery{}, err
	}
	return TrackParcelQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (q TrackParcelQuery) TrackingNumber() parcel.TrackingNumber {
	return q.trackingNumber
}

// Validate ensures the query was created through the constructor.
func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

// TrackParcelQueryResponse is the public tracking view.
// LastUpdated reflects the latest write to the parcel row, location pings
// included, so it can move without a new timeline entry.
type TrackParcelQueryResponse struct {
	TrackingNumber  string
	CurrentStatus   string
	PickupAddress   string
	DeliveryAddress string
	LastUpdated     time.Time
	Events          []TrackParcelEventResponse
}

// TrackParcelEventResponse is one timeline entry, enriched with a
// human-readable place name resolved from the event coordinates.
type TrackParcelEventResponse struct {
	Status       string
	Lat          *float64
	Lng          *float64
	LocationName string
	DispatchID   *string
	Timestamp    time.Time
}
