package commands

import (
	"context"
	"time"

	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/domain/services"
)

// UpdateParcelStatusCommandHandler handles parcel status transitions.
// Authorization runs before any mutation: a forbidden transition leaves the
// parcel and its timeline untouched.
type UpdateParcelStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
	policy     services.TransitionPolicy
}

// NewUpdateParcelStatusCommandHandler creates a handler for status transition operations.
func NewUpdateParcelStatusCommandHandler(uowFactory ParcelUoWFactory,
	policy services.TransitionPolicy) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the status transition command and returns the updated parcel.
// The status change and the appended tracking event persist in one transaction.
func (h *UpdateParcelStatusCommandHandler) Handle(ctx context.Context, cmd UpdateParcelStatusCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.Authorize(cmd.ActorRole(), cmd.NewStatus()); err != nil {
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

	if err = p.ChangeStatus(cmd.NewStatus(), cmd.EventLocation(), cmd.DispatchID(), time.Now().UTC()); err != nil {
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
