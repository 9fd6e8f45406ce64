package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand records a driver's current position. Coordinate range
// validation happens here, before any store access: an out-of-range fix is
// rejected without touching the driver record.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command to record a location fix.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewReportLocationCommand(driverID kernel.UUID, latitude, longitude float64) (ReportLocationCommand, error) {
	reportCommand := ReportLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := reportCommand.setDriverID(driverID); err != nil {
		return ReportLocationCommand{}, err
	}

	location, err := kernel.NewLocation(latitude, longitude)
	if err != nil {
		return ReportLocationCommand{}, err
	}
	reportCommand.location = location

	return reportCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// DriverID returns the reporting driver.
func (c ReportLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Location returns the validated coordinates.
func (c ReportLocationCommand) Location() kernel.Location {
	return c.location
}

func (c *ReportLocationCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
