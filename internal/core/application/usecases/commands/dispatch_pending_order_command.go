package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrDispatchPendingOrderCommandIsNotConstructed = errors.New(
	"DispatchPendingOrderCommand must be created via NewDispatchPendingOrderCommand constructor",
)

// DispatchPendingOrderCommand triggers automatic assignment: the oldest
// unassigned pending order is matched with the best available driver.
// Parameterless; the auto-dispatch job issues one per tick.
type DispatchPendingOrderCommand struct {
	guard guard.ConstructorGuard
}

// NewDispatchPendingOrderCommand creates a command to trigger auto-dispatch.
func NewDispatchPendingOrderCommand() DispatchPendingOrderCommand {
	return DispatchPendingOrderCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *DispatchPendingOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchPendingOrderCommandIsNotConstructed)
}
