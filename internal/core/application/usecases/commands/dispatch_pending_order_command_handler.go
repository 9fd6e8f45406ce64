package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/observability"
	"dispatch/internal/pkg/errs"
)

// ErrNoPendingOrder is returned when the unassigned backlog is empty.
var ErrNoPendingOrder = errors.New("no pending order to dispatch")

// DispatchPendingOrderCommandHandler orchestrates automatic assignment.
// Retrieves the oldest unassigned pending order, asks the dispatcher to pick
// the best active driver, and commits both sides of the assignment in one
// unit of work.
//
// Example:
//
//	handler := NewDispatchPendingOrderCommandHandler(uowFactory, clock, policy, notifier)
//	cmd := NewDispatchPendingOrderCommand()
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoPendingOrder):
//	    // backlog empty, nothing to do
//	case errors.Is(err, services.ErrNoDriverAvailable):
//	    // nobody active right now, retry next tick
//	}
type DispatchPendingOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	policy     driver.FreshnessPolicy
	notifier   ports.Notifier
}

// NewDispatchPendingOrderCommandHandler creates a handler for auto-dispatch.
func NewDispatchPendingOrderCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	policy driver.FreshnessPolicy,
	notifier ports.Notifier,
) DispatchPendingOrderCommandHandler {
	return DispatchPendingOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     policy,
		notifier:   notifier,
	}
}

// Handle processes the auto-dispatch command.
func (h DispatchPendingOrderCommandHandler) Handle(ctx context.Context, cmd DispatchPendingOrderCommand) error {
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

	pending, err := uow.OrderRepository().GetFirstUnassignedPending(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoPendingOrder
	}
	if err != nil {
		return err
	}

	candidates, err := uow.DriverRepository().GetAll(ctx)
	if err != nil {
		return err
	}

	assignee, err := services.NewOrderDispatcher().Dispatch(pending, candidates, h.clock.Now(), h.policy)
	if err != nil {
		return err
	}

	if err = pending.Assign(assignee.ID()); err != nil {
		return err
	}
	if err = assignee.TakeOrder(pending.ID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, pending); err != nil {
		return err
	}
	if err = uow.DriverRepository().Update(ctx, assignee); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	observability.AssignmentsTotal.Inc()
	notifyAssignment(ctx, h.notifier, pending, assignee)
	return nil
}
