package commands

import (
	"errors"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/pkg/errs"
	"courier/internal/pkg/guard"
)

// UpdateLocationCommand records a parcel's latest known coordinates.
// Location pings arrive far more often than status changes, so this is a
// silent overwrite that never touches the tracking timeline.
type UpdateLocationCommand struct {
	parcelID kernel.UUID
	point    kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewUpdateLocationCommand(parcelID kernel.UUID, point kernel.GeoPoint) (UpdateLocationCommand, error) {
	cmd := UpdateLocationCommand{guard: guard.NewConstructorGuard()}

	err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setPoint(point),
	)
	if err != nil {
		return UpdateLocationCommand{}, err
	}
	return cmd, nil
}

func (c *UpdateLocationCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("parcelID", err)
	}
	c.parcelID = id
	return nil
}

func (c *UpdateLocationCommand) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("point", err)
	}
	c.point = point
	return nil
}

func (c *UpdateLocationCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c *UpdateLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c *UpdateLocationCommand) Validate() error {
	return c.guard.Validate(errs.NewValueIsRequiredError("UpdateLocationCommand must be created via NewUpdateLocationCommand"))
}
