package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dispatchNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	due, err := kernel.NewMoney(500)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-7", "Dana", "", "Somewhere 7", due, dispatchNow)
	require.NoError(t, err)
	return o
}

// candidate builds a driver with a fix of the given age and the given number
// of held orders.
func candidate(t *testing.T, name string, fixAge time.Duration, load int) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), name, "B-DR 0001", "")
	require.NoError(t, err)

	location, err := kernel.NewLocation(52.5, 13.4)
	require.NoError(t, err)
	require.NoError(t, d.ReportFix(location, dispatchNow.Add(-fixAge)))

	for i := 0; i < load; i++ {
		require.NoError(t, d.TakeOrder(kernel.NewUUID()))
	}
	return d
}

func TestOrderDispatcher_Dispatch(t *testing.T) {
	policy := driver.DefaultFreshnessPolicy()
	dispatcher := services.NewOrderDispatcher()

	t.Run("should pick the only active driver", func(t *testing.T) {
		active := candidate(t, "Active Anna", 10*time.Second, 0)
		idle := candidate(t, "Idle Igor", 3*time.Minute, 0)
		offline := candidate(t, "Offline Olga", time.Hour, 0)

		chosen, err := dispatcher.Dispatch(pendingOrder(t),
			[]*driver.Driver{idle, offline, active}, dispatchNow, policy)

		require.NoError(t, err)
		assert.True(t, chosen.IsEqual(active))
	})

	t.Run("should prefer the lightest load", func(t *testing.T) {
		busy := candidate(t, "Busy", 10*time.Second, 3)
		light := candidate(t, "Light", 20*time.Second, 1)

		chosen, err := dispatcher.Dispatch(pendingOrder(t),
			[]*driver.Driver{busy, light}, dispatchNow, policy)

		require.NoError(t, err)
		assert.True(t, chosen.IsEqual(light))
	})

	t.Run("should break load ties by fresher fix", func(t *testing.T) {
		stale := candidate(t, "Stale", 50*time.Second, 1)
		fresh := candidate(t, "Fresh", 5*time.Second, 1)

		chosen, err := dispatcher.Dispatch(pendingOrder(t),
			[]*driver.Driver{stale, fresh}, dispatchNow, policy)

		require.NoError(t, err)
		assert.True(t, chosen.IsEqual(fresh))
	})

	t.Run("should fail with no candidates", func(t *testing.T) {
		_, err := dispatcher.Dispatch(pendingOrder(t), nil, dispatchNow, policy)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrNoDriverAvailable)
	})

	t.Run("should fail when nobody is active", func(t *testing.T) {
		idle := candidate(t, "Idle", 3*time.Minute, 0)
		offline := candidate(t, "Offline", time.Hour, 0)
		never, err := driver.NewDriver(kernel.NewUUID(), "Fresh Hire", "B-DR 0002", "")
		require.NoError(t, err)

		_, err = dispatcher.Dispatch(pendingOrder(t),
			[]*driver.Driver{idle, offline, never}, dispatchNow, policy)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrNoDriverAvailable)
	})

	t.Run("should refuse an already assigned order", func(t *testing.T) {
		o := pendingOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID()))
		active := candidate(t, "Active", 10*time.Second, 0)

		_, err := dispatcher.Dispatch(o, []*driver.Driver{active}, dispatchNow, policy)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrAlreadyAssigned)
	})

	t.Run("should refuse a non-constructed order", func(t *testing.T) {
		var o *order.Order

		_, err := dispatcher.Dispatch(o, nil, dispatchNow, policy)

		require.Error(t, err)
	})
}
