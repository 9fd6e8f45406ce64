package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	reporter := testDriver(t)
	cmd, err := commands.NewReportLocationCommand(reporter.ID(), 52.52, 13.405)
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)
	publisher := new(MockEventPublisher)
	geoIndex := new(MockDriverGeoIndex)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	driverRepo.On("Get", ctx, reporter.ID()).Return(reporter, nil).Once()
	driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("PublishDriverLocation", ctx, mock.MatchedBy(func(event ports.DriverLocationEvent) bool {
		return event.DriverID == reporter.ID().String() &&
			event.Latitude == 52.52 && event.Longitude == 13.405 && event.At.Equal(frozenNow)
	})).Return(nil).Once()
	geoIndex.On("Upsert", ctx, reporter.ID(), cmd.Location(), frozenNow).Return(nil).Once()

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportLocationCommandHandler(factory, frozenClock(), publisher, geoIndex)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, driver.Active, updated.Activity())
	require.NotNil(t, updated.LastFix())
	assert.Equal(t, frozenNow, updated.LastFix().ReportedAt())
	publisher.AssertExpectations(t)
	geoIndex.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReportLocationCommandHandler_Handle_DriverNotFound(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewReportLocationCommand(kernel.NewUUID(), 10, 20)
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	driverRepo.On("Get", ctx, cmd.DriverID()).
		Return(nil, errs.NewObjectNotFoundError("driver", cmd.DriverID())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportLocationCommandHandler(factory, frozenClock(), nil, nil)
	updated, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, updated)
}

func TestReportLocationCommandHandler_Handle_SideEffectFailuresDoNotFail(t *testing.T) {
	ctx := t.Context()

	reporter := testDriver(t)
	cmd, err := commands.NewReportLocationCommand(reporter.ID(), -33.8688, 151.2093)
	require.NoError(t, err)

	driverRepo := new(MockDriverRepository)
	uow := new(MockUnitOfWork)
	publisher := new(MockEventPublisher)
	geoIndex := new(MockDriverGeoIndex)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DriverRepository").Return(driverRepo)
	driverRepo.On("Get", ctx, reporter.ID()).Return(reporter, nil).Once()
	driverRepo.On("Update", ctx, mock.AnythingOfType("*driver.Driver")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("PublishDriverLocation", ctx, mock.AnythingOfType("ports.DriverLocationEvent")).
		Return(errors.New("broker unreachable")).Once()
	geoIndex.On("Upsert", ctx, reporter.ID(), cmd.Location(), frozenNow).
		Return(errors.New("redis down")).Once()

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportLocationCommandHandler(factory, frozenClock(), publisher, geoIndex)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, updated)
	publisher.AssertExpectations(t)
	geoIndex.AssertExpectations(t)
}

func TestNewReportLocationCommand(t *testing.T) {
	t.Run("should reject out-of-range latitude before any store access", func(t *testing.T) {
		_, err := commands.NewReportLocationCommand(kernel.NewUUID(), 91, 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject out-of-range longitude", func(t *testing.T) {
		_, err := commands.NewReportLocationCommand(kernel.NewUUID(), 0, 181)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject invalid driver id", func(t *testing.T) {
		_, err := commands.NewReportLocationCommand(kernel.UUID{}, 0, 0)

		require.Error(t, err)
	})

	t.Run("should carry the validated location", func(t *testing.T) {
		cmd, err := commands.NewReportLocationCommand(kernel.NewUUID(), 52.52, 13.405)

		require.NoError(t, err)
		assert.InDelta(t, 52.52, cmd.Location().Latitude(), 1e-9)
		assert.InDelta(t, 13.405, cmd.Location().Longitude(), 1e-9)
	})
}
