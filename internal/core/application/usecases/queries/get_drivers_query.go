package queries

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor",
)

// GetDriversQuery retrieves all drivers with their activity classification.
// Activity is derived from fix recency at query time, never read from the
// stored projection: a driver that silently stopped reporting must show as
// idle or offline the moment the thresholds pass.
type GetDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDriversQuery creates a query for the driver roster.
func NewGetDriversQuery() GetDriversQuery {
	return GetDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

// LastFixResponse is a driver's last reported position.
type LastFixResponse struct {
	Latitude   float64
	Longitude  float64
	ReportedAt time.Time
}

// GetDriversQueryResponse is the driver roster read model.
type GetDriversQueryResponse struct {
	ID               kernel.UUID
	Name             string
	VehiclePlate     string
	Phone            string
	Activity         driver.Activity
	LastFix          *LastFixResponse
	ActiveOrderCount int
}

// GetDriversHandler is implemented per storage backend.
type GetDriversHandler interface {
	Handle(ctx context.Context, query GetDriversQuery) ([]GetDriversQueryResponse, error)
}
