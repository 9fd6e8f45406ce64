// Package driverrepo provides data transfer objects and mapping functions
// for driver persistence. Drivers map to the aggregate row plus a join table
// holding the active-order set.
package driverrepo

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver
// aggregates. The last fix is embedded as three nullable columns; a driver
// that never reported has all three NULL.
type DriverDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name          string     `gorm:"type:varchar(255);not null"`
	VehiclePlate  string     `gorm:"type:varchar(32);not null"`
	Phone         string     `gorm:"type:varchar(32)"`
	LastLatitude  *float64   `gorm:"type:double precision"`
	LastLongitude *float64   `gorm:"type:double precision"`
	LastFixAt     *time.Time `gorm:"index"`
	Activity      string     `gorm:"type:varchar(16);not null"`
	Version       int64      `gorm:"not null"`

	ActiveOrders []ActiveOrderDTO `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

// ActiveOrderDTO is one entry of a driver's active-order set.
type ActiveOrderDTO struct {
	DriverID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName overrides GORM's default naming to use "driver_active_orders".
func (ActiveOrderDTO) TableName() string {
	return "driver_active_orders"
}

// fromDomain converts a driver aggregate to its database representation.
func fromDomain(aggregate *driver.Driver, version int64) DriverDTO {
	driverID := aggregate.ID().Bytes()

	dto := DriverDTO{
		ID:           driverID,
		Name:         aggregate.Name(),
		VehiclePlate: aggregate.VehiclePlate(),
		Phone:        aggregate.Phone(),
		Activity:     aggregate.Activity().String(),
		Version:      version,
	}

	if fix := aggregate.LastFix(); fix != nil {
		latitude := fix.Location().Latitude()
		longitude := fix.Location().Longitude()
		fixedAt := fix.ReportedAt()
		dto.LastLatitude = &latitude
		dto.LastLongitude = &longitude
		dto.LastFixAt = &fixedAt
	}

	for _, orderID := range aggregate.ActiveOrderIDs() {
		dto.ActiveOrders = append(dto.ActiveOrders, ActiveOrderDTO{
			DriverID: driverID,
			OrderID:  orderID.Bytes(),
		})
	}

	return dto
}

// toDomain converts a database DTO to a driver aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	activity, err := driver.ActivityFromString(dto.Activity)
	if err != nil {
		return nil, err
	}

	var lastFix *driver.LocationFix
	if dto.LastFixAt != nil && dto.LastLatitude != nil && dto.LastLongitude != nil {
		location, locErr := kernel.NewLocation(*dto.LastLatitude, *dto.LastLongitude)
		if locErr != nil {
			return nil, locErr
		}
		fix, fixErr := driver.NewLocationFix(location, *dto.LastFixAt)
		if fixErr != nil {
			return nil, fixErr
		}
		lastFix = &fix
	}

	activeOrderIDs := make([]kernel.UUID, 0, len(dto.ActiveOrders))
	for _, activeOrder := range dto.ActiveOrders {
		orderID, idErr := kernel.UUIDFromBytes(activeOrder.OrderID[:])
		if idErr != nil {
			return nil, idErr
		}
		activeOrderIDs = append(activeOrderIDs, orderID)
	}

	return driver.RestoreDriver(
		id,
		dto.Name,
		dto.VehiclePlate,
		dto.Phone,
		lastFix,
		activity,
		activeOrderIDs,
	)
}
