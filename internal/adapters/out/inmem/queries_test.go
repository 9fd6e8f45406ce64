package inmem_test

import (
	"testing"
	"time"

	"dispatch/internal/adapters/out/inmem"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrdersQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewStore()

	second := seedOrder(t, store, "ORD-2", seedTime.Add(time.Hour))
	first := seedOrder(t, store, "ORD-1", seedTime)
	assignee := seedDriver(t, store, "Jamal Okoye")

	uow := inmem.NewUnitOfWorkFactory(store).Create()
	require.NoError(t, uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, second.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.Assign(assignee.ID()))
	require.NoError(t, uow.OrderRepository().Update(ctx, loaded))
	require.NoError(t, uow.Commit(ctx))

	handler := inmem.NewGetOrdersQueryHandler(store)

	t.Run("should list all orders oldest first", func(t *testing.T) {
		query, err := queries.NewGetOrdersQuery(nil, nil)
		require.NoError(t, err)

		summaries, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, "ORD-1", summaries[0].Reference)
		assert.Equal(t, "ORD-2", summaries[1].Reference)
	})

	t.Run("should filter by driver", func(t *testing.T) {
		driverID := assignee.ID()
		query, err := queries.NewGetOrdersQuery(&driverID, nil)
		require.NoError(t, err)

		summaries, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.True(t, summaries[0].ID.IsEqual(second.ID()))
	})

	t.Run("should filter by status", func(t *testing.T) {
		status := order.Pending
		query, err := queries.NewGetOrdersQuery(nil, &status)
		require.NoError(t, err)

		summaries, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.True(t, summaries[0].ID.IsEqual(first.ID()))
	})
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewStore()

	seeded := seedOrder(t, store, "ORD-1", seedTime)
	handler := inmem.NewGetOrderQueryHandler(store)

	t.Run("should return detail with timeline", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(seeded.ID())
		require.NoError(t, err)

		detail, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "ORD-1", detail.Reference)
		assert.Equal(t, order.Pending, detail.Status)
		require.Len(t, detail.Timeline, 1)
		assert.Equal(t, order.Pending, detail.Timeline[0].Status)
		assert.Equal(t, seedTime, detail.Timeline[0].Timestamp)
	})

	t.Run("should fail for unknown id", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(kernel.NewUUID())
		require.NoError(t, err)

		_, err = handler.Handle(ctx, query)

		require.Error(t, err)
	})
}

func TestGetDriversQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewStore()

	reported := seedDriver(t, store, "Amara")
	seedDriver(t, store, "Zane")

	location, err := kernel.NewLocation(52.5, 13.4)
	require.NoError(t, err)
	uow := inmem.NewUnitOfWorkFactory(store).Create()
	require.NoError(t, uow.Begin(ctx))
	loaded, err := uow.DriverRepository().Get(ctx, reported.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.ReportFix(location, seedTime))
	require.NoError(t, uow.DriverRepository().Update(ctx, loaded))
	require.NoError(t, uow.Commit(ctx))

	// Activity is derived at read time from fix age against the query clock.
	queryClock := ports.ClockFunc(func() time.Time { return seedTime.Add(2 * time.Minute) })
	handler := inmem.NewGetDriversQueryHandler(store, queryClock, driver.DefaultFreshnessPolicy())

	roster, err := handler.Handle(ctx, queries.NewGetDriversQuery())

	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Amara", roster[0].Name)
	assert.Equal(t, driver.Idle, roster[0].Activity)
	require.NotNil(t, roster[0].LastFix)
	assert.InDelta(t, 52.5, roster[0].LastFix.Latitude, 1e-9)
	assert.Equal(t, "Zane", roster[1].Name)
	assert.Equal(t, driver.Offline, roster[1].Activity)
	assert.Nil(t, roster[1].LastFix)
}

func TestGetHandoversQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := inmem.NewStore()

	reporter := seedDriver(t, store, "Jamal Okoye")
	other := seedDriver(t, store, "Amara")
	seedHandover(t, store, reporter.ID())
	seedHandover(t, store, other.ID())

	handler := inmem.NewGetHandoversQueryHandler(store)

	t.Run("should list all handovers", func(t *testing.T) {
		query, err := queries.NewGetHandoversQuery(nil, nil)
		require.NoError(t, err)

		worklist, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.Len(t, worklist, 2)
	})

	t.Run("should filter by driver", func(t *testing.T) {
		driverID := reporter.ID()
		query, err := queries.NewGetHandoversQuery(&driverID, nil)
		require.NoError(t, err)

		worklist, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		require.Len(t, worklist, 1)
		assert.True(t, worklist[0].DriverID.IsEqual(reporter.ID()))
	})
}
