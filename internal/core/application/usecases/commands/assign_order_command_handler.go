package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/observability"
)

// AssignOrderCommandHandler orchestrates manual order assignment. Both sides
// of the assignment fact change inside one unit of work: the order gains its
// driver reference and the driver's active set gains the order. Under
// concurrent assignment attempts exactly one commits; the rest observe the
// order as already assigned.
//
// The driver notification goes out only after the commit succeeds and its
// failure never undoes the assignment.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
}

// NewAssignOrderCommandHandler creates a handler for manual assignment.
func NewAssignOrderCommandHandler(uowFactory UoWFactory, notifier ports.Notifier) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the assignment command. Fails with ErrObjectNotFound for
// an unknown order or driver and with order.ErrAlreadyAssigned when the order
// is not pending-unassigned.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
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

	assignedOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	assignee, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = assignedOrder.Assign(assignee.ID()); err != nil {
		return err
	}
	if err = assignee.TakeOrder(assignedOrder.ID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, assignedOrder); err != nil {
		return err
	}
	if err = uow.DriverRepository().Update(ctx, assignee); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	observability.AssignmentsTotal.Inc()
	notifyAssignment(ctx, h.notifier, assignedOrder, assignee)
	return nil
}

// notifyAssignment sends the best-effort "new order" push to the driver.
// Shared by the manual and automatic assignment paths.
func notifyAssignment(ctx context.Context, notifier ports.Notifier, o *order.Order, d *driver.Driver) {
	if notifier == nil {
		return
	}

	notification := ports.Notification{
		OrderReference: o.Reference(),
		DriverID:       d.ID(),
		Phone:          d.Phone(),
		Message:        fmt.Sprintf("New delivery %s: %s, %s", o.Reference(), o.CustomerName(), o.Address()),
		Channels:       []ports.Channel{ports.ChannelWhatsApp, ports.ChannelSMS},
	}
	if err := notifier.Notify(ctx, notification); err != nil {
		observability.NotificationFailuresTotal.Inc()
	}
}
