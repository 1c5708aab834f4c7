package commands

import (
	"context"

	"courier/internal/core/domain/model/parcel"
)

// UpdateLocationCommandHandler handles courier location pings.
type UpdateLocationCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewUpdateLocationCommandHandler creates a handler for location ping operations.
func NewUpdateLocationCommandHandler(uowFactory ParcelUoWFactory) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle overwrites the parcel's current coordinates and returns the updated
// parcel. No tracking event is appended.
func (h *UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	if err = p.UpdateCurrentLocation(cmd.Point()); err != nil {
		return nil, err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
