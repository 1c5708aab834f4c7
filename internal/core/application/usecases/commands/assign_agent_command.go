package commands

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// AssignAgentCommand assigns a delivery agent to a parcel.
type AssignAgentCommand struct {
	parcelID kernel.UUID
	agentID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignAgentCommand(parcelID kernel.UUID, agentID kernel.UUID) (AssignAgentCommand, error) {
	cmd := AssignAgentCommand{guard: guard.NewConstructorGuard()}

	err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setAgentID(agentID),
	)
	if err != nil {
		return AssignAgentCommand{}, err
	}
	return cmd, nil
}

func (c *AssignAgentCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("parcelID", err)
	}
	c.parcelID = id
	return nil
}

func (c *AssignAgentCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agentID", err)
	}
	c.agentID = id
	return nil
}

func (c *AssignAgentCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c *AssignAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c *AssignAgentCommand) Validate() error {
	return c.guard.Validate(errs.NewValueIsRequiredError("AssignAgentCommand must be created via NewAssignAgentCommand"))
}
