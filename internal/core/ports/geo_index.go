package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// DriverPosition is a geo-index entry: a driver and where it last was.
type DriverPosition struct {
	DriverID   kernel.UUID
	Location   kernel.Location
	DistanceKm float64
}

// DriverGeoIndex mirrors driver location fixes into a spatial index for
// proximity queries (dashboard map, nearest-driver shortlists). The index is
// a projection, not a store of record: it is updated best-effort after a
// location commit and readers tolerate staleness.
type DriverGeoIndex interface {
	Upsert(ctx context.Context, driverID kernel.UUID, location kernel.Location, reportedAt time.Time) error
	Nearby(ctx context.Context, center kernel.Location, radiusKm float64, limit int) ([]DriverPosition, error)
}
