package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/observability"
)

// TransitionOrderCommandHandler advances an order's status inside a unit of
// work and, after commit, publishes the change to event observers. Terminal
// transitions additionally push a notification to the driver's phone.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	notifier   ports.Notifier
	publisher  ports.EventPublisher
	policy     order.OverCollectPolicy
}

// NewTransitionOrderCommandHandler creates a handler for status transitions.
// The over-collect policy decides whether cash collected may exceed the
// amount due when the transition carries a note.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	clock ports.Clock,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	policy order.OverCollectPolicy,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
		publisher:  publisher,
		policy:     policy,
	}
}

// Handle processes the transition command. The aggregate decides legality:
// order.ErrInvalidTransition for a skipped or backward step,
// order.ErrNotAssigned when leaving pending without a driver, and a
// ValueIsOutOfRangeError when the cash delta breaks the collection rules.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	transitioned, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// The driver's phone is needed for the terminal-status push; fetch it in
	// repository order (orders before drivers) while the unit of work is open.
	var assignee *driverSnapshot
	if driverID := transitioned.AssignedDriverID(); driverID != nil {
		holder, err := uow.DriverRepository().Get(ctx, *driverID)
		if err != nil {
			return err
		}
		assignee = &driverSnapshot{id: holder.ID(), phone: holder.Phone()}
	}

	if err = transitioned.TransitionTo(cmd.Target(), h.clock.Now(), cmd.CashDelta(), cmd.Note(), h.policy); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, transitioned); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.afterCommit(ctx, transitioned, assignee)
	return nil
}

type driverSnapshot struct {
	id    kernel.UUID
	phone string
}

func (h TransitionOrderCommandHandler) afterCommit(ctx context.Context, o *order.Order, assignee *driverSnapshot) {
	observability.OrderTransitionsTotal.WithLabelValues(o.Status().String()).Inc()

	if h.publisher != nil {
		event := ports.OrderChangedEvent{
			OrderID:   o.ID().String(),
			Reference: o.Reference(),
			Status:    o.Status().String(),
			At:        o.Timeline()[len(o.Timeline())-1].Timestamp(),
		}
		if driverID := o.AssignedDriverID(); driverID != nil {
			event.DriverID = driverID.String()
		}
		if err := h.publisher.PublishOrderChanged(ctx, event); err != nil {
			observability.NotificationFailuresTotal.Inc()
		}
	}

	if h.notifier != nil && o.Status().IsTerminal() && assignee != nil {
		notification := ports.Notification{
			OrderReference: o.Reference(),
			DriverID:       assignee.id,
			Phone:          assignee.phone,
			Message:        fmt.Sprintf("Order %s closed as %s", o.Reference(), o.Status()),
			Channels:       []ports.Channel{ports.ChannelWhatsApp},
		}
		if err := h.notifier.Notify(ctx, notification); err != nil {
			observability.NotificationFailuresTotal.Inc()
		}
	}
}
