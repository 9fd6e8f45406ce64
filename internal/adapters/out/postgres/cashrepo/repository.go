package cashrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormHandoverRepository implements HandoverRepository using GORM with
// optimistic version checks on updates. The version check is what makes
// resolution exactly-once under concurrent approvals: the second writer's
// conditioned update matches zero rows.
type GormHandoverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the unit-of-work surface the repository needs.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
	RecordVersion(id kernel.UUID, version int64)
	LoadedVersion(id kernel.UUID) int64
}

// NewGormHandoverRepository creates a new GORM handover repository.
func NewGormHandoverRepository(db *gorm.DB, tracker aggregateTracker) *GormHandoverRepository {
	return &GormHandoverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new handover to the database at version 1.
func (r *GormHandoverRepository) Add(ctx context.Context, aggregate *cash.Handover) error {
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

// Update saves a handover resolution, conditioned on the version read within
// this unit of work.
func (r *GormHandoverRepository) Update(ctx context.Context, aggregate *cash.Handover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	loaded := r.tracker.LoadedVersion(aggregate.ID())
	dto := fromDomain(aggregate, loaded+1)

	result := r.db.WithContext(ctx).Model(&HandoverDTO{}).
		Where("id = ? AND version = ?", dto.ID, loaded).
		Updates(map[string]any{
			"status":  dto.Status,
			"notes":   dto.Notes,
			"version": dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("handover",
			errs.NewObjectNotFoundError("handoverId", aggregate.ID().String()))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a handover by ID.
func (r *GormHandoverRepository) Get(ctx context.Context, id kernel.UUID) (*cash.Handover, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HandoverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("handoverId", id.String())
		}
		return nil, err
	}

	r.tracker.RecordVersion(id, dto.Version)
	return toDomain(dto)
}
