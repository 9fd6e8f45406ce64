package driverrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDriverRepository implements DriverRepository using GORM with
// optimistic version checks on updates.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the unit-of-work surface the repository needs.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
	RecordVersion(id kernel.UUID, version int64)
	LoadedVersion(id kernel.UUID) int64
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new driver to the database at version 1.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, 1)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing driver, conditioned on the version read within
// this unit of work. The active-order set is replaced wholesale; the set is
// small (a handful of orders per driver) so delete-and-insert inside the
// transaction is simpler than diffing.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	loaded := r.tracker.LoadedVersion(aggregate.ID())
	dto := fromDomain(aggregate, loaded+1)

	result := r.db.WithContext(ctx).Model(&DriverDTO{}).
		Where("id = ? AND version = ?", dto.ID, loaded).
		Updates(map[string]any{
			"name":           dto.Name,
			"vehicle_plate":  dto.VehiclePlate,
			"phone":          dto.Phone,
			"last_latitude":  dto.LastLatitude,
			"last_longitude": dto.LastLongitude,
			"last_fix_at":    dto.LastFixAt,
			"activity":       dto.Activity,
			"version":        dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("driver",
			errs.NewObjectNotFoundError("driverId", aggregate.ID().String()))
	}

	if err := r.db.WithContext(ctx).
		Where("driver_id = ?", dto.ID).
		Delete(&ActiveOrderDTO{}).Error; err != nil {
		return err
	}
	if len(dto.ActiveOrders) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.ActiveOrders).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a driver by ID, including the active-order set.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	err := r.db.WithContext(ctx).
		Preload("ActiveOrders").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driverId", id.String())
		}
		return nil, err
	}

	r.tracker.RecordVersion(id, dto.Version)
	return toDomain(dto)
}

// GetAll retrieves all drivers sorted by name.
func (r *GormDriverRepository) GetAll(ctx context.Context) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	if err := r.db.WithContext(ctx).
		Preload("ActiveOrders").
		Order("name").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		r.tracker.RecordVersion(id, dto.Version)

		restored, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, restored)
	}

	return drivers, nil
}
