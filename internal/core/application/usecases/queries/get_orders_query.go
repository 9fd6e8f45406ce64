// Package queries contains the engine's read side. Queries bypass the
// aggregates and unit of work entirely: the postgres handlers read with raw
// SQL, the in-memory handlers read from store snapshots. Read models carry
// only what the dashboard needs.
package queries

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves order summaries, optionally filtered by assigned
// driver and/or status.
//
// Example:
//
//	query := NewGetOrdersQuery(&driverID, nil)
//	summaries, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	driverID *kernel.UUID
	status   *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for order summaries. Nil filters match
// everything.
func NewGetOrdersQuery(driverID *kernel.UUID, status *order.Status) (GetOrdersQuery, error) {
	q := GetOrdersQuery{guard: guard.NewConstructorGuard()}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
		id := *driverID
		q.driverID = &id
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
		s := *status
		q.status = &s
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// DriverID returns the assigned-driver filter, or nil.
func (q GetOrdersQuery) DriverID() *kernel.UUID {
	return q.driverID
}

// Status returns the status filter, or nil.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// GetOrdersQueryResponse is the order summary read model.
type GetOrdersQueryResponse struct {
	ID               kernel.UUID
	Reference        string
	CustomerName     string
	Address          string
	Status           order.Status
	AssignedDriverID *kernel.UUID
	CashDue          int64
	CashCollected    int64
	CreatedAt        time.Time
}

// GetOrdersHandler is implemented per storage backend.
type GetOrdersHandler interface {
	Handle(ctx context.Context, query GetOrdersQuery) ([]GetOrdersQueryResponse, error)
}
