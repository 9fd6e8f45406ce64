package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeDriver(t *testing.T, name string, load int) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), name, "B-DR 7777", "")
	require.NoError(t, err)
	location, err := kernel.NewLocation(52.5, 13.4)
	require.NoError(t, err)
	require.NoError(t, d.ReportFix(location, frozenNow.Add(-10*time.Second)))
	for i := 0; i < load; i++ {
		require.NoError(t, d.TakeOrder(kernel.NewUUID()))
	}
	return d
}

func TestDispatchPendingOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchPendingOrderCommand()

	pending := testPendingOrder(t)
	light := activeDriver(t, "Light", 0)
	busy := activeDriver(t, "Busy", 2)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	orderRepo.On("GetFirstUnassignedPending", ctx).Return(pending, nil).Once()
	driverRepo.On("GetAll", ctx).Return([]*driver.Driver{busy, light}, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchPendingOrderCommandHandler(
		factory, frozenClock(), driver.DefaultFreshnessPolicy(), nil)
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, pending.AssignedDriverID())
	assert.True(t, pending.AssignedDriverID().IsEqual(light.ID()))
	assert.True(t, light.Holds(pending.ID()))
	assert.False(t, busy.Holds(pending.ID()))
	uow.AssertExpectations(t)
}

func TestDispatchPendingOrderCommandHandler_Handle_EmptyBacklog(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchPendingOrderCommand()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("GetFirstUnassignedPending", ctx).
		Return(nil, errs.NewObjectNotFoundError("order", "unassigned pending")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchPendingOrderCommandHandler(
		factory, frozenClock(), driver.DefaultFreshnessPolicy(), nil)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrNoPendingOrder)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestDispatchPendingOrderCommandHandler_Handle_NoActiveDriver(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchPendingOrderCommand()

	pending := testPendingOrder(t)
	stale, err := driver.NewDriver(kernel.NewUUID(), "Stale", "B-DR 0003", "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("DriverRepository").Return(driverRepo)
	orderRepo.On("GetFirstUnassignedPending", ctx).Return(pending, nil).Once()
	driverRepo.On("GetAll", ctx).Return([]*driver.Driver{stale}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewDispatchPendingOrderCommandHandler(
		factory, frozenClock(), driver.DefaultFreshnessPolicy(), nil)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrNoDriverAvailable)
	assert.Nil(t, pending.AssignedDriverID())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestDispatchPendingOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.DispatchPendingOrderCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewDispatchPendingOrderCommandHandler(
		factory, frozenClock(), driver.DefaultFreshnessPolicy(), nil)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDispatchPendingOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
