package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateOrderCommand("ORD-100", "Frank", "+49151", "Ringstr. 9", 2500)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, frozenClock())
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	require.NoError(t, created.ID().Validate())
	assert.Equal(t, "ORD-100", created.Reference())
	assert.Equal(t, order.Pending, created.Status())
	assert.Equal(t, int64(2500), created.CashDue().Amount())
	assert.True(t, created.CashCollected().IsZero())

	timeline := created.Timeline()
	require.Len(t, timeline, 1)
	assert.Equal(t, frozenNow, timeline[0].Timestamp())
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory, frozenClock())
	created, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	assert.Nil(t, created)
	factory.AssertNotCalled(t, "Create")
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("should fail with empty reference", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand("", "Frank", "", "Ringstr. 9", 100)

		require.Error(t, err)
	})

	t.Run("should fail with empty customer name", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand("ORD-100", "", "", "Ringstr. 9", 100)

		require.Error(t, err)
	})

	t.Run("should fail with empty address", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand("ORD-100", "Frank", "", "", 100)

		require.Error(t, err)
	})

	t.Run("should fail with negative cash due", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand("ORD-100", "Frank", "", "Ringstr. 9", -1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should allow empty phone and zero cash", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand("ORD-100", "Frank", "", "Ringstr. 9", 0)

		require.NoError(t, err)
		assert.Empty(t, cmd.CustomerPhone())
		assert.True(t, cmd.CashDue().IsZero())
	})
}
