package inmem

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

type driverRepository struct {
	uow *UnitOfWork
}

// Add stages a new driver. The record joins the arena at commit.
func (r *driverRepository) Add(_ context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	staged, err := cloneDriver(aggregate)
	if err != nil {
		return err
	}
	r.uow.stagedDrivers[aggregate.ID().Bytes()] = staged
	return nil
}

// Update stages changes to an existing driver.
func (r *driverRepository) Update(_ context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().Bytes()
	if _, isNew := r.uow.stagedDrivers[id]; !isNew {
		if r.uow.lockDriver(id) == nil {
			return errs.NewObjectNotFoundError("driverId", aggregate.ID().String())
		}
	}

	staged, err := cloneDriver(aggregate)
	if err != nil {
		return err
	}
	r.uow.stagedDrivers[id] = staged
	return nil
}

// Get locks the driver's record and returns a private clone. Location
// reports for different drivers touch different records and never contend.
func (r *driverRepository) Get(_ context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	raw := id.Bytes()
	if staged, ok := r.uow.stagedDrivers[raw]; ok {
		return cloneDriver(staged)
	}

	record := r.uow.lockDriver(raw)
	if record == nil {
		return nil, errs.NewObjectNotFoundError("driverId", id.String())
	}
	return cloneDriver(record.aggregate)
}

// GetAll locks every driver record, in a deterministic order so concurrent
// whole-roster operations cannot deadlock each other, and returns clones.
func (r *driverRepository) GetAll(_ context.Context) ([]*driver.Driver, error) {
	ids := r.uow.store.driverIDs()

	drivers := make([]*driver.Driver, 0, len(ids))
	for _, id := range ids {
		record := r.uow.lockDriver(id)
		if record == nil {
			continue
		}

		aggregate := record.aggregate
		if staged, ok := r.uow.stagedDrivers[id]; ok {
			aggregate = staged
		}
		clone, err := cloneDriver(aggregate)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, clone)
	}

	// Drivers added within this unit of work are part of the roster too.
	for id, staged := range r.uow.stagedDrivers {
		if _, held := r.uow.heldDrivers[id]; held {
			continue
		}
		if r.uow.store.driverRecord(id) != nil {
			continue
		}
		clone, err := cloneDriver(staged)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, clone)
	}

	return drivers, nil
}
