package inmem

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
)

// ErrNoActiveUnitOfWork is returned when Commit or Rollback is called on a
// unit of work that was never begun or has already finished.
var ErrNoActiveUnitOfWork = errors.New("unit of work is not active")

// UnitOfWorkFactory creates UnitOfWork instances bound to a store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory for store-backed unit of work
// instances.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:           f.store,
		heldOrders:      make(map[uuid.UUID]*orderRecord),
		heldDrivers:     make(map[uuid.UUID]*driverRecord),
		heldHandovers:   make(map[uuid.UUID]*handoverRecord),
		stagedOrders:    make(map[uuid.UUID]*order.Order),
		stagedDrivers:   make(map[uuid.UUID]*driver.Driver),
		stagedHandovers: make(map[uuid.UUID]*cash.Handover),
	}
}

// UnitOfWork is one transaction against the store. Record locks accumulate
// from first access and are released only by Commit or Rollback (two-phase
// locking). Mutations are staged as clones and become visible atomically at
// commit, under the store's write gate.
type UnitOfWork struct {
	store *Store
	begun bool

	heldOrders    map[uuid.UUID]*orderRecord
	heldDrivers   map[uuid.UUID]*driverRecord
	heldHandovers map[uuid.UUID]*handoverRecord

	stagedOrders    map[uuid.UUID]*order.Order
	stagedDrivers   map[uuid.UUID]*driver.Driver
	stagedHandovers map[uuid.UUID]*cash.Handover
}

// Begin marks the unit of work active. Locks are taken lazily at first
// record access, not here.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.begun = true
	return nil
}

// Commit atomically publishes all staged mutations and releases every held
// lock. New records join the arena and updated records have their aggregate
// pointer swapped; snapshot readers observe either all of it or none.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.begun {
		return ErrNoActiveUnitOfWork
	}

	uow.store.gate.Lock()
	for id, staged := range uow.stagedOrders {
		if record, held := uow.heldOrders[id]; held {
			record.aggregate = staged
		} else {
			uow.store.orders[id] = &orderRecord{aggregate: staged}
		}
	}
	for id, staged := range uow.stagedDrivers {
		if record, held := uow.heldDrivers[id]; held {
			record.aggregate = staged
		} else {
			uow.store.drivers[id] = &driverRecord{aggregate: staged}
		}
	}
	for id, staged := range uow.stagedHandovers {
		if record, held := uow.heldHandovers[id]; held {
			record.aggregate = staged
		} else {
			uow.store.handovers[id] = &handoverRecord{aggregate: staged}
		}
	}
	uow.store.gate.Unlock()

	uow.release()
	return nil
}

// Rollback discards all staged mutations and releases every held lock.
// Rolling back an already finished unit of work is an error, which callers
// using the deferred-rollback pattern deliberately ignore.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.begun {
		return ErrNoActiveUnitOfWork
	}

	uow.release()
	return nil
}

func (uow *UnitOfWork) release() {
	for _, record := range uow.heldOrders {
		record.mu.Unlock()
	}
	for _, record := range uow.heldDrivers {
		record.mu.Unlock()
	}
	for _, record := range uow.heldHandovers {
		record.mu.Unlock()
	}

	uow.heldOrders = make(map[uuid.UUID]*orderRecord)
	uow.heldDrivers = make(map[uuid.UUID]*driverRecord)
	uow.heldHandovers = make(map[uuid.UUID]*handoverRecord)
	uow.stagedOrders = make(map[uuid.UUID]*order.Order)
	uow.stagedDrivers = make(map[uuid.UUID]*driver.Driver)
	uow.stagedHandovers = make(map[uuid.UUID]*cash.Handover)
	uow.begun = false
}

// lockOrder acquires the record lock unless this unit of work already holds
// it. Returns nil when the record does not exist.
func (uow *UnitOfWork) lockOrder(id uuid.UUID) *orderRecord {
	if record, held := uow.heldOrders[id]; held {
		return record
	}

	record := uow.store.orderRecord(id)
	if record == nil {
		return nil
	}
	record.mu.Lock()
	uow.heldOrders[id] = record
	return record
}

func (uow *UnitOfWork) lockDriver(id uuid.UUID) *driverRecord {
	if record, held := uow.heldDrivers[id]; held {
		return record
	}

	record := uow.store.driverRecord(id)
	if record == nil {
		return nil
	}
	record.mu.Lock()
	uow.heldDrivers[id] = record
	return record
}

func (uow *UnitOfWork) lockHandover(id uuid.UUID) *handoverRecord {
	if record, held := uow.heldHandovers[id]; held {
		return record
	}

	record := uow.store.handoverRecord(id)
	if record == nil {
		return nil
	}
	record.mu.Lock()
	uow.heldHandovers[id] = record
	return record
}

// OrderRepository provides order persistence within the unit of work.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

// DriverRepository provides driver persistence within the unit of work.
func (uow *UnitOfWork) DriverRepository() ports.DriverRepository {
	return &driverRepository{uow: uow}
}

// HandoverRepository provides handover persistence within the unit of work.
func (uow *UnitOfWork) HandoverRepository() ports.HandoverRepository {
	return &handoverRepository{uow: uow}
}
