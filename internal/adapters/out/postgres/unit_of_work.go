// Package postgres provides the GORM-based implementation of the unit of
// work and its repositories.
//
// Concurrency control on this backend is optimistic: every aggregate row
// carries a version column, updates are conditioned on the version read
// within the same unit of work, and a lost race surfaces as
// errs.ErrVersionIsInvalid. Callers retry or report a conflict; they never
// block on another writer.
package postgres

import (
	"context"

	"dispatch/internal/adapters/out/postgres/cashrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances bound to a GORM
// database connection. Each business operation gets a fresh instance with
// its own transaction and version bookkeeping.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
		loadedVersions:    make(map[uuid.UUID]int64),
	}
}

// GormUnitOfWork coordinates a database transaction across the order,
// driver, and handover repositories. It remembers the version of every row
// loaded through it so that updates can be conditioned on that version.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
	loadedVersions    map[uuid.UUID]int64
}

// Begin initiates the database transaction. Calling Begin on an already
// begun unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides order persistence within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// DriverRepository provides driver persistence within the unit of work.
func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn(), uow)
}

// HandoverRepository provides handover persistence within the unit of work.
func (uow *GormUnitOfWork) HandoverRepository() ports.HandoverRepository {
	return cashrepo.NewGormHandoverRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by repository implementations on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// RecordVersion remembers the version of a row loaded through this unit of
// work. Called by repository Get implementations.
func (uow *GormUnitOfWork) RecordVersion(id kernel.UUID, version int64) {
	uow.loadedVersions[id.Bytes()] = version
}

// LoadedVersion returns the version recorded for the row, or zero when the
// row was not loaded through this unit of work.
func (uow *GormUnitOfWork) LoadedVersion(id kernel.UUID) int64 {
	return uow.loadedVersions[id.Bytes()]
}
