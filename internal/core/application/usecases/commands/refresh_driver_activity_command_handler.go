package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
)

// RefreshDriverActivityCommandHandler reclassifies driver liveness in bulk.
// A driver that simply stops reporting decays to idle and then offline
// without any write of its own; this sweep persists that decay so stored
// projections match what read-time derivation reports.
type RefreshDriverActivityCommandHandler struct {
	uowFactory DriverUoWFactory
	clock      ports.Clock
	policy     driver.FreshnessPolicy
}

// NewRefreshDriverActivityCommandHandler creates a handler for the activity
// sweep.
func NewRefreshDriverActivityCommandHandler(
	uowFactory DriverUoWFactory,
	clock ports.Clock,
	policy driver.FreshnessPolicy,
) RefreshDriverActivityCommandHandler {
	return RefreshDriverActivityCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     policy,
	}
}

// Handle processes the sweep and returns how many drivers changed class.
// Unchanged drivers are not rewritten.
func (h RefreshDriverActivityCommandHandler) Handle(ctx context.Context, cmd RefreshDriverActivityCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	drivers, err := uow.DriverRepository().GetAll(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, swept := range drivers {
		if !swept.RefreshActivity(now, h.policy) {
			continue
		}
		if err = uow.DriverRepository().Update(ctx, swept); err != nil {
			return 0, err
		}
		changed++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return changed, nil
}
