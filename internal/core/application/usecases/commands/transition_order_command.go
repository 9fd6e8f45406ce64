package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand advances an order along its status lifecycle,
// optionally recording cash collected during the step and a free-form note.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.Delivered, 35000, "paid in full")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // requested status is not the legal successor
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	cashDelta int64
	note      string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to advance an order's status.
// The target must be a known status; whether it is reachable from the current
// one is decided by the aggregate at handling time.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	cashDelta int64,
	note string,
) (TransitionOrderCommand, error) {
	transitionCommand := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitionCommand.setOrderID(orderID),
		transitionCommand.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	transitionCommand.cashDelta = cashDelta
	transitionCommand.note = note
	return transitionCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// CashDelta returns the additional cash collected during this step.
func (c TransitionOrderCommand) CashDelta() int64 {
	return c.cashDelta
}

// Note returns the optional timeline note.
func (c TransitionOrderCommand) Note() string {
	return c.note
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
