package ports

import (
	"context"

	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/kernel"
)

// HandoverRepository defines the persistence contract for cash handovers.
type HandoverRepository interface {
	// Add persists a new handover aggregate.
	Add(ctx context.Context, aggregate *cash.Handover) error

	// Update persists the resolution of an existing handover.
	Update(ctx context.Context, aggregate *cash.Handover) error

	// Get retrieves a handover by its unique identifier.
	// Returns an ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*cash.Handover, error)
}
