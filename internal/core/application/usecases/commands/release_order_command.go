package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReleaseOrderCommandIsNotConstructed = errors.New(
	"ReleaseOrderCommand must be created via NewReleaseOrderCommand constructor",
)

// ReleaseOrderCommand unbinds an order from its driver. For a pending order
// the assignment is undone so the order can be dispatched again; for a
// delivered or returned order the driver's active set is trimmed while the
// order keeps its driver reference for audit.
type ReleaseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseOrderCommand creates a command to release an order's driver.
func NewReleaseOrderCommand(orderID kernel.UUID) (ReleaseOrderCommand, error) {
	releaseCommand := ReleaseOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := releaseCommand.setOrderID(orderID); err != nil {
		return ReleaseOrderCommand{}, err
	}

	return releaseCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOrderCommandIsNotConstructed)
}

// OrderID returns the order to release.
func (c ReleaseOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *ReleaseOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
