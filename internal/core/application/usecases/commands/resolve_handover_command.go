package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrResolveHandoverCommandIsNotConstructed = errors.New(
	"ResolveHandoverCommand must be created via NewResolveHandoverCommand constructor",
)

// ResolveHandoverCommand records finance's verdict on a pending handover:
// approved (cash counted and accepted) or rejected (discrepancy found).
type ResolveHandoverCommand struct { //nolint:recvcheck //using for validation
	handoverID kernel.UUID
	outcome    cash.Status

	guard guard.ConstructorGuard
}

// NewResolveHandoverCommand creates a command to resolve a handover.
// The outcome must be approved or rejected.
func NewResolveHandoverCommand(handoverID kernel.UUID, outcome cash.Status) (ResolveHandoverCommand, error) {
	resolveCommand := ResolveHandoverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		resolveCommand.setHandoverID(handoverID),
		resolveCommand.setOutcome(outcome),
	); err != nil {
		return ResolveHandoverCommand{}, err
	}

	return resolveCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveHandoverCommand) Validate() error {
	return c.guard.Validate(ErrResolveHandoverCommandIsNotConstructed)
}

// HandoverID returns the handover to resolve.
func (c ResolveHandoverCommand) HandoverID() kernel.UUID {
	return c.handoverID
}

// Outcome returns the requested resolution.
func (c ResolveHandoverCommand) Outcome() cash.Status {
	return c.outcome
}

func (c *ResolveHandoverCommand) setHandoverID(handoverID kernel.UUID) error {
	if err := handoverID.Validate(); err != nil {
		return err
	}

	c.handoverID = handoverID
	return nil
}

func (c *ResolveHandoverCommand) setOutcome(outcome cash.Status) error {
	if !outcome.IsResolution() {
		return errs.NewValueIsInvalidErrorWithCause("outcome",
			fmt.Errorf("%s is not a terminal resolution", outcome))
	}

	c.outcome = outcome
	return nil
}
