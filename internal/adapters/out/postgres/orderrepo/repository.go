package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM with optimistic
// version checks on updates.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is the slice of the unit of work the repository needs:
// aggregate tracking plus version bookkeeping for optimistic updates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
	RecordVersion(id kernel.UUID, version int64)
	LoadedVersion(id kernel.UUID) int64
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database at version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order, conditioned on the version read within
// this unit of work. A concurrent writer that got there first makes the
// conditioned update match zero rows, which surfaces as
// errs.ErrVersionIsInvalid.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	loaded := r.tracker.LoadedVersion(aggregate.ID())
	dto := fromDomain(aggregate, loaded+1)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loaded).
		Updates(map[string]any{
			"status":             dto.Status,
			"assigned_driver_id": dto.AssignedDriverID,
			"cash_collected":     dto.CashCollected,
			"version":            dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("order",
			errs.NewObjectNotFoundError("orderId", aggregate.ID().String()))
	}

	// Timeline rows are append-only; existing (order_id, seq) pairs are left
	// untouched.
	if len(dto.Timeline) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.Timeline).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID, including its complete timeline.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, err
	}

	r.tracker.RecordVersion(id, dto.Version)
	return toDomain(dto)
}

// GetFirstUnassignedPending retrieves the oldest pending order without a
// driver.
func (r *GormOrderRepository) GetFirstUnassignedPending(ctx context.Context) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Where("status = ? AND assigned_driver_id IS NULL", order.Pending.String()).
		Order("created_at").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", "unassigned pending")
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	r.tracker.RecordVersion(id, dto.Version)
	return toDomain(dto)
}
