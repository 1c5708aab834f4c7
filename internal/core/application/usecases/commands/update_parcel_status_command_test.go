package commands_test

import (
	"testing"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/domain/services"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateParcelStatusCommand_ValidInput(t *testing.T) {
	parcelID := kernel.NewUUID()
	location, err := kernel.NewGeoPoint(23.75, 90.39)
	require.NoError(t, err)
	dispatchID := "dispatch-42"

	cmd, err := commands.NewUpdateParcelStatusCommand(parcelID, services.RoleAdmin,
		parcel.InTransit, &location, &dispatchID)
	require.NoError(t, err)
	assert.True(t, cmd.ParcelID().IsEqual(parcelID))
	assert.Equal(t, services.RoleAdmin, cmd.ActorRole())
	assert.Equal(t, parcel.InTransit, cmd.NewStatus())
	require.NotNil(t, cmd.EventLocation())
	isEqual, err := cmd.EventLocation().IsEqual(location)
	require.NoError(t, err)
	assert.True(t, isEqual)
	require.NotNil(t, cmd.DispatchID())
	assert.Equal(t, "dispatch-42", *cmd.DispatchID())
}

func TestNewUpdateParcelStatusCommand_OptionalFieldsOmitted(t *testing.T) {
	cmd, err := commands.NewUpdateParcelStatusCommand(kernel.NewUUID(), services.RoleCustomer,
		parcel.Delivered, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, cmd.EventLocation())
	assert.Nil(t, cmd.DispatchID())
}

func TestNewUpdateParcelStatusCommand_InvalidRole(t *testing.T) {
	_, err := commands.NewUpdateParcelStatusCommand(kernel.NewUUID(), services.Role("superuser"),
		parcel.InTransit, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewUpdateParcelStatusCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewUpdateParcelStatusCommand(kernel.NewUUID(), services.RoleAdmin,
		parcel.Unknown, nil, nil)
	require.Error(t, err)
}

func TestNewUpdateParcelStatusCommand_InvalidParcelID(t *testing.T) {
	_, err := commands.NewUpdateParcelStatusCommand(kernel.UUID{}, services.RoleAdmin,
		parcel.InTransit, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
