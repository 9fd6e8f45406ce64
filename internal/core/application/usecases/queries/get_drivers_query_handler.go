package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriversQueryHandler retrieves the driver roster from postgres with raw
// SQL. Activity is classified from the last fix timestamp against the
// freshness policy at query time; the stored activity column is ignored on
// this path.
type GetDriversQueryHandler struct {
	db     *gorm.DB
	clock  ports.Clock
	policy driver.FreshnessPolicy
}

// NewGetDriversQueryHandler creates a postgres-backed handler for the driver
// roster.
func NewGetDriversQueryHandler(db *gorm.DB, clock ports.Clock, policy driver.FreshnessPolicy) GetDriversQueryHandler {
	return GetDriversQueryHandler{db: db, clock: clock, policy: policy}
}

// Handle executes the query. Results are sorted by name.
func (h GetDriversQueryHandler) Handle(
	ctx context.Context,
	query GetDriversQuery,
) ([]GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			d.vehicle_plate,
			d.phone,
			d.last_latitude,
			d.last_longitude,
			d.last_fix_at,
			(SELECT COUNT(*) FROM driver_active_orders o WHERE o.driver_id = d.id) AS active_orders
		FROM drivers d
		ORDER BY d.name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]GetDriversQueryResponse, 0)
	for rows.Next() {
		var roster GetDriversQueryResponse
		var id uuid.UUID
		var latitude, longitude sql.NullFloat64
		var fixedAt sql.NullTime

		err = rows.Scan(
			&id,
			&roster.Name,
			&roster.VehiclePlate,
			&roster.Phone,
			&latitude,
			&longitude,
			&fixedAt,
			&roster.ActiveOrderCount,
		)
		if err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		roster.ID = driverID

		if fixedAt.Valid && latitude.Valid && longitude.Valid {
			roster.LastFix = &LastFixResponse{
				Latitude:   latitude.Float64,
				Longitude:  longitude.Float64,
				ReportedAt: fixedAt.Time,
			}
			roster.Activity = h.policy.Classify(fixedAt.Time, now)
		} else {
			roster.Activity = driver.Offline
		}

		drivers = append(drivers, roster)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
