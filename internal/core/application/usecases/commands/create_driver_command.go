package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand represents a request to register a new driver.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	name         string
	vehiclePlate string
	phone        string

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand creates a command to register a new driver.
// Name and vehicle plate are required; the phone number is optional but
// needed for assignment notifications to reach the driver.
func NewCreateDriverCommand(name, vehiclePlate, phone string) (CreateDriverCommand, error) {
	driverCommand := CreateDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driverCommand.setName(name),
		driverCommand.setVehiclePlate(vehiclePlate),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	driverCommand.phone = phone
	return driverCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

// Name returns the driver's name.
func (c CreateDriverCommand) Name() string {
	return c.name
}

// VehiclePlate returns the vehicle registration plate.
func (c CreateDriverCommand) VehiclePlate() string {
	return c.vehiclePlate
}

// Phone returns the driver's phone number.
func (c CreateDriverCommand) Phone() string {
	return c.phone
}

func (c *CreateDriverCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateDriverCommand) setVehiclePlate(plate string) error {
	if plate == "" {
		return errs.NewValueIsRequiredError("vehiclePlate")
	}

	c.vehiclePlate = plate
	return nil
}
