package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary over the order,
// driver, and handover stores. Every engine operation either commits fully
// or leaves no partial effect; no caller ever observes an assignment with
// only one side applied.
//
// Handlers that touch several entity kinds must access them in the fixed
// global order (orders, then drivers, then handovers) so lock-based
// implementations cannot deadlock.
type UnitOfWork interface {
	// Begin starts the transaction.
	Begin(ctx context.Context) error

	// Commit atomically applies every staged change.
	Commit(ctx context.Context) error

	// Rollback discards all staged changes. Safe to call after Commit;
	// the usual pattern is a deferred Rollback guarding the happy path.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to this transaction.
	OrderRepository() OrderRepository

	// DriverRepository returns a DriverRepository bound to this transaction.
	DriverRepository() DriverRepository

	// HandoverRepository returns a HandoverRepository bound to this transaction.
	HandoverRepository() HandoverRepository
}
