package commands_test

import (
	"testing"
	"time"

	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnassignAgentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	p := storedParcel(t)
	require.NoError(t, p.Assign(kernel.NewUUID(), time.Now().UTC()))
	p.MarkEventsCommitted()

	cmd, err := commands.NewUnassignAgentCommand(p.ID())
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

	h := commands.NewUnassignAgentCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Nil(t, updated.AgentID())
	assert.Equal(t, parcel.Booked, updated.Status())

	events := updated.Events()
	last := events[len(events)-1]
	assert.Equal(t, parcel.EventStatusUnassigned, last.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUnassignAgentCommandHandler_Handle_NoAgentAssigned(t *testing.T) {
	// unassigning a parcel without an agent still resets status and records
	// the marker event, mirroring the write-through behavior of assignment
	ctx := t.Context()
	p := storedParcel(t)

	cmd, err := commands.NewUnassignAgentCommand(p.ID())
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

	h := commands.NewUnassignAgentCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Nil(t, updated.AgentID())
	assert.Equal(t, parcel.Booked, updated.Status())
}

func TestUnassignAgentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UnassignAgentCommand{} // not constructed properly
	factory := new(MockParcelUoWFactory)
	h := commands.NewUnassignAgentCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
