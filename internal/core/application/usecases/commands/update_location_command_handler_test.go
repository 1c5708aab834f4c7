package commands_test

import (
	"testing"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	p := storedParcel(t)
	eventsBefore := len(p.Events())

	point, err := kernel.NewGeoPoint(23.75, 90.39)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateLocationCommand(p.ID(), point)
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

	h := commands.NewUpdateLocationCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, updated.CurrentLocation())
	isEqual, err := updated.CurrentLocation().IsEqual(point)
	require.NoError(t, err)
	assert.True(t, isEqual)
	assert.Len(t, updated.Events(), eventsBefore, "location ping must not append a tracking event")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateLocationCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateLocationCommand{} // not constructed properly
	factory := new(MockParcelUoWFactory)
	h := commands.NewUpdateLocationCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
