package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingHandover(t *testing.T) *cash.Handover {
	t.Helper()
	amount, err := kernel.NewMoney(5000)
	require.NoError(t, err)
	h, err := cash.NewHandover(kernel.NewUUID(), kernel.NewUUID(), amount, "",
		time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return h
}

func TestResolveHandoverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	handover := pendingHandover(t)
	cmd, err := commands.NewResolveHandoverCommand(handover.ID(), cash.Approved)
	require.NoError(t, err)

	handoverRepo := new(MockHandoverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("HandoverRepository").Return(handoverRepo)
	handoverRepo.On("Get", ctx, handover.ID()).Return(handover, nil).Once()
	handoverRepo.On("Update", ctx, mock.AnythingOfType("*cash.Handover")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockHandoverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResolveHandoverCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, cash.Approved, handover.Status())
	uow.AssertExpectations(t)
	handoverRepo.AssertExpectations(t)
}

func TestResolveHandoverCommandHandler_Handle_AlreadyResolved(t *testing.T) {
	ctx := t.Context()

	handover := pendingHandover(t)
	require.NoError(t, handover.Resolve(cash.Rejected))

	cmd, err := commands.NewResolveHandoverCommand(handover.ID(), cash.Approved)
	require.NoError(t, err)

	handoverRepo := new(MockHandoverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("HandoverRepository").Return(handoverRepo)
	handoverRepo.On("Get", ctx, handover.ID()).Return(handover, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockHandoverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResolveHandoverCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, cash.ErrAlreadyResolved)
	// The first verdict stands.
	assert.Equal(t, cash.Rejected, handover.Status())
	handoverRepo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestResolveHandoverCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewResolveHandoverCommand(kernel.NewUUID(), cash.Approved)
	require.NoError(t, err)

	handoverRepo := new(MockHandoverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("HandoverRepository").Return(handoverRepo)
	handoverRepo.On("Get", ctx, cmd.HandoverID()).
		Return(nil, errs.NewObjectNotFoundError("handover", cmd.HandoverID())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockHandoverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewResolveHandoverCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNewResolveHandoverCommand(t *testing.T) {
	t.Run("should reject pending as outcome", func(t *testing.T) {
		_, err := commands.NewResolveHandoverCommand(kernel.NewUUID(), cash.Pending)

		require.Error(t, err)
	})

	t.Run("should reject invalid handover id", func(t *testing.T) {
		_, err := commands.NewResolveHandoverCommand(kernel.UUID{}, cash.Approved)

		require.Error(t, err)
	})

	t.Run("should carry terminal outcomes", func(t *testing.T) {
		for _, outcome := range []cash.Status{cash.Approved, cash.Rejected} {
			cmd, err := commands.NewResolveHandoverCommand(kernel.NewUUID(), outcome)

			require.NoError(t, err)
			assert.Equal(t, outcome, cmd.Outcome())
		}
	})
}
