package ports

import (
	"context"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
//
// Implementations must persist the aggregate atomically: a save writes the
// parcel's fields and its uncommitted tracking events as one logical unit,
// so a status change can never land without its event or vice versa.
type ParcelRepository interface {
	// Add persists a new parcel aggregate together with its creation event.
	// Returns a ConflictError wrapping the storage error if the tracking
	// number collides with an existing one.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate, appending
	// any uncommitted tracking events in the same transaction.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier,
	// timeline included.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingNumber retrieves a parcel by exact tracking number match.
	GetByTrackingNumber(ctx context.Context, number parcel.TrackingNumber) (*parcel.Parcel, error)
}
