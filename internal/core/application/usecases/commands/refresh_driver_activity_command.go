package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrRefreshDriverActivityCommandIsNotConstructed = errors.New(
	"RefreshDriverActivityCommand must be created via NewRefreshDriverActivityCommand constructor",
)

// RefreshDriverActivityCommand triggers a sweep that re-derives every
// driver's stored activity classification from the recency of its last fix.
// Parameterless; the sweep job issues one per tick.
type RefreshDriverActivityCommand struct {
	guard guard.ConstructorGuard
}

// NewRefreshDriverActivityCommand creates a command to trigger the sweep.
func NewRefreshDriverActivityCommand() RefreshDriverActivityCommand {
	return RefreshDriverActivityCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *RefreshDriverActivityCommand) Validate() error {
	return c.guard.Validate(ErrRefreshDriverActivityCommandIsNotConstructed)
}
