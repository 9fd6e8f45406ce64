// Package ports defines the contracts between the dispatch engine and its
// infrastructure: repositories, the unit of work, and the outbound
// side-effect ports (notification, events, geo index).
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier, including its
	// complete timeline. Returns an ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstUnassignedPending retrieves the oldest pending order without
	// a driver. Used by the auto-dispatch loop. Returns an
	// ObjectNotFoundError when the backlog is empty.
	GetFirstUnassignedPending(ctx context.Context) (*order.Order, error)
}
