package commands

import (
	"context"
	"time"

	"courier/internal/core/domain/model/parcel"
)

// UnassignAgentCommandHandler handles agent removal.
// Unassignment resets the parcel to "Booked" and records an "Unassigned"
// marker event so the timeline shows the handover was undone.
type UnassignAgentCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewUnassignAgentCommandHandler creates a handler for agent removal operations.
func NewUnassignAgentCommandHandler(uowFactory ParcelUoWFactory) UnassignAgentCommandHandler {
	return UnassignAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the unassignment command and returns the updated parcel.
func (h *UnassignAgentCommandHandler) Handle(ctx context.Context, cmd UnassignAgentCommand) (*parcel.Parcel, error) {
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

	if err = p.Unassign(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	p.MarkEventsCommitted()
	return p, nil
}
