package commands_test

import (
	"testing"
	"time"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"
	"courier/internal/core/domain/services"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	pickup, err := kernel.NewGeoPoint(23.8103, 90.4125)
	require.NoError(t, err)
	delivery, err := kernel.NewGeoPoint(22.3569, 91.7832)
	require.NoError(t, err)

	p, err := parcel.NewParcel(kernel.NewUUID(), kernel.NewUUID(),
		"12 Mirpur Rd, Dhaka", "7 Agrabad Ave, Chattogram", "Electronics",
		parcel.PaymentPrepaid, parcel.SizeMedium, &pickup, &delivery, time.Now().UTC())
	require.NoError(t, err)
	p.MarkEventsCommitted()
	return p
}

func TestUpdateParcelStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	p := storedParcel(t)
	cmd, err := commands.NewUpdateParcelStatusCommand(p.ID(), services.RoleAdmin, parcel.InTransit, nil, nil)
	require.NoError(t, err)

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once(),
		repo.On("Update", mock.Anything, p).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateParcelStatusCommandHandler(factory, services.NewTransitionPolicy())
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, parcel.InTransit, updated.Status())
	assert.Len(t, updated.Events(), 2)
	assert.Empty(t, updated.UncommittedEvents())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateParcelStatusCommandHandler_Handle_AgentForbiddenBeforeAnyWork(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpdateParcelStatusCommand(kernel.NewUUID(), services.RoleAgent, parcel.InTransit, nil, nil)
	require.NoError(t, err)

	// factory must never be touched when authorization fails
	factory := new(MockParcelUoWFactory)

	h := commands.NewUpdateParcelStatusCommandHandler(factory, services.NewTransitionPolicy())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertExpectations(t)
}

func TestUpdateParcelStatusCommandHandler_Handle_AgentAllowedStatus(t *testing.T) {
	ctx := t.Context()
	p := storedParcel(t)
	cmd, err := commands.NewUpdateParcelStatusCommand(p.ID(), services.RoleAgent, parcel.Delivered, nil, nil)
	require.NoError(t, err)

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once(),
		repo.On("Update", mock.Anything, p).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateParcelStatusCommandHandler(factory, services.NewTransitionPolicy())
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, parcel.Delivered, updated.Status())
}

func TestUpdateParcelStatusCommandHandler_Handle_ParcelNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewUpdateParcelStatusCommand(id, services.RoleCustomer, parcel.HubReceived, nil, nil)
	require.NoError(t, err)

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("parcelId", id)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateParcelStatusCommandHandler(factory, services.NewTransitionPolicy())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateParcelStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateParcelStatusCommand{} // not constructed properly
	factory := new(MockParcelUoWFactory)
	h := commands.NewUpdateParcelStatusCommandHandler(factory, services.NewTransitionPolicy())
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
