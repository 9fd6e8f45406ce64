package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewCreateDriverCommand("Jamal Okoye", "B-DR 1234", "+4917611122")
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	driverRepo.On("Add", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateDriverCommandHandler(factory)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	require.NoError(t, created.ID().Validate())
	assert.Equal(t, "Jamal Okoye", created.Name())
	assert.Equal(t, "B-DR 1234", created.VehiclePlate())
	assert.Equal(t, driver.Offline, created.Activity())
	assert.Nil(t, created.LastFix())
	assert.Empty(t, created.ActiveOrderIDs())
	uow.AssertExpectations(t)
}

func TestCreateDriverCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateDriverCommand{} // not constructed properly

	factory := new(MockDriverUoWFactory)
	handler := commands.NewCreateDriverCommandHandler(factory)
	created, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateDriverCommandIsNotConstructed)
	assert.Nil(t, created)
	factory.AssertNotCalled(t, "Create")
}

func TestNewCreateDriverCommand(t *testing.T) {
	t.Run("should fail with empty name", func(t *testing.T) {
		_, err := commands.NewCreateDriverCommand("", "B-DR 1234", "")

		require.Error(t, err)
	})

	t.Run("should fail with empty vehicle plate", func(t *testing.T) {
		_, err := commands.NewCreateDriverCommand("Jamal Okoye", "", "")

		require.Error(t, err)
	})

	t.Run("should allow empty phone", func(t *testing.T) {
		cmd, err := commands.NewCreateDriverCommand("Jamal Okoye", "B-DR 1234", "")

		require.NoError(t, err)
		assert.Empty(t, cmd.Phone())
	})
}
