package queries

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetHandoversQueryIsNotConstructed = errors.New(
	"GetHandoversQuery must be created via NewGetHandoversQuery constructor",
)

// GetHandoversQuery retrieves cash handovers, optionally filtered by driver
// and/or reconciliation status.
type GetHandoversQuery struct {
	driverID *kernel.UUID
	status   *cash.Status

	guard guard.ConstructorGuard
}

// NewGetHandoversQuery creates a query for the reconciliation worklist. Nil
// filters match everything.
func NewGetHandoversQuery(driverID *kernel.UUID, status *cash.Status) (GetHandoversQuery, error) {
	q := GetHandoversQuery{guard: guard.NewConstructorGuard()}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return GetHandoversQuery{}, err
		}
		id := *driverID
		q.driverID = &id
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetHandoversQuery{}, err
		}
		s := *status
		q.status = &s
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetHandoversQuery) Validate() error {
	return q.guard.Validate(ErrGetHandoversQueryIsNotConstructed)
}

// DriverID returns the driver filter, or nil.
func (q GetHandoversQuery) DriverID() *kernel.UUID {
	return q.driverID
}

// Status returns the status filter, or nil.
func (q GetHandoversQuery) Status() *cash.Status {
	return q.status
}

// GetHandoversQueryResponse is the handover read model.
type GetHandoversQueryResponse struct {
	ID         kernel.UUID
	DriverID   kernel.UUID
	Amount     int64
	Notes      string
	ReportedAt time.Time
	Status     cash.Status
}

// GetHandoversHandler is implemented per storage backend.
type GetHandoversHandler interface {
	Handle(ctx context.Context, query GetHandoversQuery) ([]GetHandoversQueryResponse, error)
}
