package commands

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/domain/services"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// UpdateParcelStatusCommand moves a parcel to a new lifecycle status on behalf
// of an actor. The optional event location and dispatch ID are recorded on the
// resulting tracking event.
type UpdateParcelStatusCommand struct {
	parcelID      kernel.UUID
	actorRole     services.Role
	newStatus     parcel.Status
	eventLocation *kernel.GeoPoint
	dispatchID    *string

	guard guard.ConstructorGuard
}

func NewUpdateParcelStatusCommand(parcelID kernel.UUID, actorRole services.Role,
	newStatus parcel.Status, eventLocation *kernel.GeoPoint, dispatchID *string) (UpdateParcelStatusCommand, error) {
	cmd := UpdateParcelStatusCommand{guard: guard.NewConstructorGuard()}

	err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setActorRole(actorRole),
		cmd.setNewStatus(newStatus),
		cmd.setEventLocation(eventLocation),
	)
	if err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	cmd.dispatchID = dispatchID
	return cmd, nil
}

func (c *UpdateParcelStatusCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("parcelID", err)
	}
	c.parcelID = id
	return nil
}

func (c *UpdateParcelStatusCommand) setActorRole(role services.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.actorRole = role
	return nil
}

func (c *UpdateParcelStatusCommand) setNewStatus(status parcel.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.newStatus = status
	return nil
}

func (c *UpdateParcelStatusCommand) setEventLocation(location *kernel.GeoPoint) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("eventLocation", err)
		}
	}
	c.eventLocation = location
	return nil
}

func (c *UpdateParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c *UpdateParcelStatusCommand) ActorRole() services.Role {
	return c.actorRole
}

func (c *UpdateParcelStatusCommand) NewStatus() parcel.Status {
	return c.newStatus
}

func (c *UpdateParcelStatusCommand) EventLocation() *kernel.GeoPoint {
	return c.eventLocation
}

func (c *UpdateParcelStatusCommand) DispatchID() *string {
	return c.dispatchID
}

func (c *UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(errs.NewValueIsRequiredError("UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand"))
}
