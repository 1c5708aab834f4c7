package commands

import (
	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// UnassignAgentCommand removes the assigned agent from a parcel.
type UnassignAgentCommand struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewUnassignAgentCommand(parcelID kernel.UUID) (UnassignAgentCommand, error) {
	cmd := UnassignAgentCommand{guard: guard.NewConstructorGuard()}

	if err := cmd.setParcelID(parcelID); err != nil {
		return UnassignAgentCommand{}, err
	}
	return cmd, nil
}

func (c *UnassignAgentCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("parcelID", err)
	}
	c.parcelID = id
	return nil
}

func (c *UnassignAgentCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c *UnassignAgentCommand) Validate() error {
	return c.guard.Validate(errs.NewValueIsRequiredError("UnassignAgentCommand must be created via NewUnassignAgentCommand"))
}
