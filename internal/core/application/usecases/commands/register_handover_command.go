package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterHandoverCommandIsNotConstructed = errors.New(
	"RegisterHandoverCommand must be created via NewRegisterHandoverCommand constructor",
)

// RegisterHandoverCommand records that a driver physically handed cash to
// finance. The handover starts pending and is reconciled separately.
type RegisterHandoverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	amount   kernel.Money
	notes    string

	guard guard.ConstructorGuard
}

// NewRegisterHandoverCommand creates a command to register a cash handover.
// The amount must not be negative; zero is allowed (an explicit "nothing to
// hand over" report).
func NewRegisterHandoverCommand(driverID kernel.UUID, amount int64, notes string) (RegisterHandoverCommand, error) {
	handoverCommand := RegisterHandoverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := handoverCommand.setDriverID(driverID); err != nil {
		return RegisterHandoverCommand{}, err
	}

	money, err := kernel.NewMoney(amount)
	if err != nil {
		return RegisterHandoverCommand{}, err
	}
	handoverCommand.amount = money
	handoverCommand.notes = notes

	return handoverCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterHandoverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterHandoverCommandIsNotConstructed)
}

// DriverID returns the reporting driver.
func (c RegisterHandoverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Amount returns the handed-over amount.
func (c RegisterHandoverCommand) Amount() kernel.Money {
	return c.amount
}

// Notes returns the optional free-form notes.
func (c RegisterHandoverCommand) Notes() string {
	return c.notes
}

func (c *RegisterHandoverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
