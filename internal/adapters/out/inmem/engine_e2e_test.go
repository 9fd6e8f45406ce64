package inmem_test

import (
	"testing"
	"time"

	"dispatch/internal/adapters/out/inmem"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	orderUoWFactoryFunc  func() commands.OrderUoW
	driverUoWFactoryFunc func() commands.DriverUoW
)

func (f orderUoWFactoryFunc) Create() commands.OrderUoW   { return f() }
func (f driverUoWFactoryFunc) Create() commands.DriverUoW { return f() }

// engine bundles the command handlers against one shared store, wired the
// same way the composition root does it.
type engine struct {
	createOrder      commands.CreateOrderCommandHandler
	createDriver     commands.CreateDriverCommandHandler
	assignOrder      commands.AssignOrderCommandHandler
	transitionOrder  commands.TransitionOrderCommandHandler
	reportLocation   commands.ReportLocationCommandHandler
	registerHandover commands.RegisterHandoverCommandHandler
	resolveHandover  commands.ResolveHandoverCommandHandler
}

func newEngine(store *inmem.Store, clock ports.Clock) engine {
	factory := inmem.NewUnitOfWorkFactory(store)

	orderFactory := orderUoWFactoryFunc(func() commands.OrderUoW { return factory.Create() })
	driverFactory := driverUoWFactoryFunc(func() commands.DriverUoW { return factory.Create() })
	crossFactory := uowFactoryFunc(func() commands.UoW { return factory.Create() })
	handoverFactory := handoverUoWFactoryFunc(func() commands.HandoverUoW { return factory.Create() })

	return engine{
		createOrder:      commands.NewCreateOrderCommandHandler(orderFactory, clock),
		createDriver:     commands.NewCreateDriverCommandHandler(driverFactory),
		assignOrder:      commands.NewAssignOrderCommandHandler(crossFactory, nil),
		transitionOrder:  commands.NewTransitionOrderCommandHandler(crossFactory, clock, nil, nil, order.OverCollectForbid),
		reportLocation:   commands.NewReportLocationCommandHandler(driverFactory, clock, nil, nil),
		registerHandover: commands.NewRegisterHandoverCommandHandler(handoverFactory, clock),
		resolveHandover:  commands.NewResolveHandoverCommandHandler(handoverFactory),
	}
}

func TestEngine_DeliveryLifecycle(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewStore()

	now := seedTime
	clock := ports.ClockFunc(func() time.Time { return now })
	eng := newEngine(store, clock)

	createOrderCmd, err := commands.NewCreateOrderCommand(
		"ORD-5000", "Amira Khalil", "+20100000000", "12 Nile St, Giza", 5000)
	require.NoError(t, err)
	created, err := eng.createOrder.Handle(ctx, createOrderCmd)
	require.NoError(t, err)
	assert.Equal(t, order.Pending, created.Status())

	createDriverCmd, err := commands.NewCreateDriverCommand("Jamal Okoye", "B-DR 1234", "+4917611122")
	require.NoError(t, err)
	courier, err := eng.createDriver.Handle(ctx, createDriverCmd)
	require.NoError(t, err)

	reportCmd, err := commands.NewReportLocationCommand(courier.ID(), 52.5, 13.4)
	require.NoError(t, err)
	_, err = eng.reportLocation.Handle(ctx, reportCmd)
	require.NoError(t, err)

	assignCmd, err := commands.NewAssignOrderCommand(created.ID(), courier.ID())
	require.NoError(t, err)
	require.NoError(t, eng.assignOrder.Handle(ctx, assignCmd))

	steps := []struct {
		target    order.Status
		cashDelta int64
	}{
		{order.Accepted, 0},
		{order.PickedUp, 0},
		{order.InTransit, 0},
		{order.Delivered, 5000},
	}
	for _, step := range steps {
		now = now.Add(5 * time.Minute)
		cmd, err := commands.NewTransitionOrderCommand(created.ID(), step.target, step.cashDelta, "")
		require.NoError(t, err)
		require.NoError(t, eng.transitionOrder.Handle(ctx, cmd))
	}

	verifier := inmem.NewUnitOfWorkFactory(store).Create()
	require.NoError(t, verifier.Begin(ctx))
	delivered, err := verifier.OrderRepository().Get(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, delivered.Status())
	assert.Equal(t, int64(5000), delivered.CashCollected().Amount())
	require.NotNil(t, delivered.AssignedDriverID())
	assert.True(t, delivered.AssignedDriverID().IsEqual(courier.ID()))
	assert.Len(t, delivered.Timeline(), 5)

	holder, err := verifier.DriverRepository().Get(ctx, courier.ID())
	require.NoError(t, err)
	assert.True(t, holder.Holds(created.ID()))
	require.NoError(t, verifier.Rollback(ctx))
}

func TestEngine_HandoverReconciliation(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewStore()

	eng := newEngine(store, ports.ClockFunc(func() time.Time { return seedTime }))

	createDriverCmd, err := commands.NewCreateDriverCommand("Jamal Okoye", "B-DR 1234", "")
	require.NoError(t, err)
	courier, err := eng.createDriver.Handle(ctx, createDriverCmd)
	require.NoError(t, err)

	registerCmd, err := commands.NewRegisterHandoverCommand(courier.ID(), 5000, "end of shift")
	require.NoError(t, err)
	registered, err := eng.registerHandover.Handle(ctx, registerCmd)
	require.NoError(t, err)
	assert.Equal(t, cash.Pending, registered.Status())

	approveCmd, err := commands.NewResolveHandoverCommand(registered.ID(), cash.Approved)
	require.NoError(t, err)
	require.NoError(t, eng.resolveHandover.Handle(ctx, approveCmd))

	rejectCmd, err := commands.NewResolveHandoverCommand(registered.ID(), cash.Rejected)
	require.NoError(t, err)
	err = eng.resolveHandover.Handle(ctx, rejectCmd)
	require.ErrorIs(t, err, cash.ErrAlreadyResolved)

	verifier := inmem.NewUnitOfWorkFactory(store).Create()
	require.NoError(t, verifier.Begin(ctx))
	settled, err := verifier.HandoverRepository().Get(ctx, registered.ID())
	require.NoError(t, err)
	assert.Equal(t, cash.Approved, settled.Status())
	require.NoError(t, verifier.Rollback(ctx))
}
