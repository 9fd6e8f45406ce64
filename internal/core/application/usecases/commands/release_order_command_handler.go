package commands

import (
	"context"
)

// ReleaseOrderCommandHandler removes an order from its driver's active set,
// keeping both sides of the assignment consistent within one unit of work.
type ReleaseOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewReleaseOrderCommandHandler creates a handler for order release.
func NewReleaseOrderCommandHandler(uowFactory UoWFactory) ReleaseOrderCommandHandler {
	return ReleaseOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the release command. Fails with order.ErrNotAssigned when
// the order has no driver and order.ErrOrderNotReleasable while the order is
// in flight between acceptance and a terminal status.
func (h ReleaseOrderCommandHandler) Handle(ctx context.Context, cmd ReleaseOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	released, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	driverID, err := released.Release()
	if err != nil {
		return err
	}

	holder, err := uow.DriverRepository().Get(ctx, driverID)
	if err != nil {
		return err
	}
	if err = holder.ReleaseOrder(released.ID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, released); err != nil {
		return err
	}
	if err = uow.DriverRepository().Update(ctx, holder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
