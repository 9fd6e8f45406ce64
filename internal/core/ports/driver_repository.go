package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate, including
	// the location fix and active-order set.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver by its unique identifier.
	// Returns an ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAll retrieves all drivers. Used by the activity sweep and the
	// dispatcher's candidate selection.
	GetAll(ctx context.Context) ([]*driver.Driver, error)
}
