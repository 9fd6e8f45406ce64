// Package commands contains the engine's write operations. Each operation is
// a constructor-validated command plus a handler that runs it inside a unit
// of work: validate, begin, mutate aggregates, commit, then dispatch
// best-effort side effects (notifications, events) outside any lock.
//
// Handlers that touch several entity kinds access them in the fixed global
// order (orders, then drivers, then handovers), which is what makes
// lock-based unit-of-work implementations deadlock-free.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces scoped to what each command actually touches.
// Single-entity operations (location reports above all) must not contend
// with unrelated cross-entity operations, so they get narrower contracts.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DriverRepoFactory provides the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// HandoverRepoFactory provides the handover repository within a transaction.
	HandoverRepoFactory interface {
		HandoverRepository() ports.HandoverRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DriverUoW manages transactions for driver-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	// DriverUoWFactory creates driver unit of work instances.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// HandoverUoW manages transactions for cash operations. Registration
	// verifies the reporting driver exists, so the driver repository is in
	// scope as well.
	HandoverUoW interface {
		TxManager
		DriverRepoFactory
		HandoverRepoFactory
	}

	// HandoverUoWFactory creates handover unit of work instances.
	HandoverUoWFactory interface {
		Create() HandoverUoW
	}

	// UoW manages transactions across order and driver aggregates, used by
	// assignment, transition, and release.
	UoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
	}

	// UoWFactory creates cross-aggregate unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
