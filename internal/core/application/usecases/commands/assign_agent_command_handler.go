package commands

import (
	"context"
	"time"

	"courier/internal/core/domain/model/parcel"
)

// AssignAgentCommandHandler handles agent assignment.
// Assignment always moves the parcel to "Picked Up" and records the
// transition in the timeline, replacing any previous agent.
type AssignAgentCommandHandler struct {
	uowFactory ParcelUoWFactory
}

// NewAssignAgentCommandHandler creates a handler for agent assignment operations.
func NewAssignAgentCommandHandler(uowFactory ParcelUoWFactory) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command and returns the updated parcel.
func (h *AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) (*parcel.Parcel, error) {
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

	if err = p.Assign(cmd.AgentID(), time.Now().UTC()); err != nil {
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
