package postgres_test

import (
	"context"
	"testing"
	"time"

	pgadapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/cashrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/stretchr/testify/suite"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies the GORM unit of work against a
// real PostgreSQL instance: transaction boundaries across the three
// repositories and the optimistic conflict on concurrent writers.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.TimelineEntryDTO{},
		&driverrepo.DriverDTO{},
		&driverrepo.ActiveOrderDTO{},
		&cashrepo.HandoverDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = pgadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_timeline_entries, drivers, driver_active_orders, cash_handovers").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func createTestOrder(suite *UnitOfWorkIntegrationTestSuite) *order.Order {
	cashDue, err := kernel.NewMoney(900)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), "ORD-"+kernel.NewUUID().String()[:8], "Alice Smith", "+4915177", "Parkweg 3",
		cashDue, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	return testOrder
}

func createTestDriver(suite *UnitOfWorkIntegrationTestSuite) *driver.Driver {
	testDriver, err := driver.NewDriver(kernel.NewUUID(), "Jamal Okoye", "B-DR 1234", "+4917611122")
	suite.Require().NoError(err)
	return testDriver
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.DriverRepository())
	suite.NotNil(uow1.HandoverRepository())
	suite.NotNil(uow2.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	// Begin on an active unit of work is a no-op.
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFinishWithoutBegin() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignmentWorkflow_CommitsBothAggregates() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite)
	testDriver := createTestDriver(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, testDriver))

	suite.Require().NoError(testOrder.Assign(testDriver.ID()))
	suite.Require().NoError(testDriver.TakeOrder(testOrder.ID()))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))
	suite.Require().NoError(uow.DriverRepository().Update(ctx, testDriver))
	suite.Require().NoError(uow.Commit(ctx))

	verifier := suite.factory.Create()
	retrievedOrder, err := verifier.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrievedOrder.AssignedDriverID())
	suite.True(retrievedOrder.AssignedDriverID().IsEqual(testDriver.ID()))

	retrievedDriver, err := verifier.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.True(retrievedDriver.Holds(testOrder.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite)
	testDriver := createTestDriver(suite)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.DriverRepository().Add(ctx, testDriver))

	// Both visible inside the transaction.
	_, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	_, err = uow.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	verifier := suite.factory.Create()
	_, err = verifier.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = verifier.DriverRepository().Get(ctx, testDriver.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestHandoverWorkflow_ResolvePersists() {
	ctx := context.Background()

	testDriver := createTestDriver(suite)
	amount, err := kernel.NewMoney(12500)
	suite.Require().NoError(err)
	handover, err := cash.NewHandover(
		kernel.NewUUID(), testDriver.ID(), amount, "end of shift",
		time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	suite.Require().NoError(writer.DriverRepository().Add(ctx, testDriver))
	suite.Require().NoError(writer.HandoverRepository().Add(ctx, handover))
	suite.Require().NoError(writer.Commit(ctx))

	resolver := suite.factory.Create()
	suite.Require().NoError(resolver.Begin(ctx))
	loaded, err := resolver.HandoverRepository().Get(ctx, handover.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Resolve(cash.Approved))
	suite.Require().NoError(resolver.HandoverRepository().Update(ctx, loaded))
	suite.Require().NoError(resolver.Commit(ctx))

	verifier := suite.factory.Create()
	settled, err := verifier.HandoverRepository().Get(ctx, handover.ID())
	suite.Require().NoError(err)
	suite.Equal(cash.Approved, settled.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentUpdate_LoserGetsVersionConflict() {
	ctx := context.Background()

	testOrder := createTestOrder(suite)
	seeder := suite.factory.Create()
	suite.Require().NoError(seeder.Begin(ctx))
	suite.Require().NoError(seeder.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(seeder.Commit(ctx))

	// Both units of work load the same version of the row.
	winner := suite.factory.Create()
	suite.Require().NoError(winner.Begin(ctx))
	winnerOrder, err := winner.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	loser := suite.factory.Create()
	suite.Require().NoError(loser.Begin(ctx))
	loserOrder, err := loser.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(winnerOrder.Assign(kernel.NewUUID()))
	suite.Require().NoError(winner.OrderRepository().Update(ctx, winnerOrder))
	suite.Require().NoError(winner.Commit(ctx))

	// The loser's conditioned update matches zero rows once the winner's
	// commit bumps the version.
	suite.Require().NoError(loserOrder.Assign(kernel.NewUUID()))
	err = loser.OrderRepository().Update(ctx, loserOrder)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Require().NoError(loser.Rollback(ctx))

	verifier := suite.factory.Create()
	settled, err := verifier.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(settled.AssignedDriverID())
	suite.True(settled.AssignedDriverID().IsEqual(*winnerOrder.AssignedDriverID()))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
