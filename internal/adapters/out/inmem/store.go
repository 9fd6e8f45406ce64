// Package inmem provides the embedded storage backend: an in-process arena
// of domain aggregates with transactional units of work.
//
// Concurrency control is pessimistic two-phase locking. Every record carries
// its own mutex; a unit of work locks a record at first access and holds the
// lock until commit or rollback, so writers to the same entity serialize and
// the loser of a race observes the winner's committed state (an assignment
// race surfaces as order.ErrAlreadyAssigned, a resolution race as
// cash.ErrAlreadyResolved). Deadlock freedom comes from the fixed global
// access order that all command handlers follow: orders, then drivers,
// then handovers.
//
// The store-wide gate serializes commits against snapshot readers: commits
// swap staged aggregates in under the write side, query handlers read under
// the read side and therefore never observe a half-applied unit of work.
package inmem

import (
	"sort"
	"sync"

	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type orderRecord struct {
	mu        sync.Mutex
	aggregate *order.Order
}

type driverRecord struct {
	mu        sync.Mutex
	aggregate *driver.Driver
}

type handoverRecord struct {
	mu        sync.Mutex
	aggregate *cash.Handover
}

// Store is the in-process arena holding all records. Stored aggregates are
// never mutated in place: units of work stage clones and commits swap the
// pointers, so anything read under the gate stays immutable.
type Store struct {
	gate      sync.RWMutex
	orders    map[uuid.UUID]*orderRecord
	drivers   map[uuid.UUID]*driverRecord
	handovers map[uuid.UUID]*handoverRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		orders:    make(map[uuid.UUID]*orderRecord),
		drivers:   make(map[uuid.UUID]*driverRecord),
		handovers: make(map[uuid.UUID]*handoverRecord),
	}
}

func (s *Store) orderRecord(id uuid.UUID) *orderRecord {
	s.gate.RLock()
	defer s.gate.RUnlock()
	return s.orders[id]
}

func (s *Store) driverRecord(id uuid.UUID) *driverRecord {
	s.gate.RLock()
	defer s.gate.RUnlock()
	return s.drivers[id]
}

func (s *Store) handoverRecord(id uuid.UUID) *handoverRecord {
	s.gate.RLock()
	defer s.gate.RUnlock()
	return s.handovers[id]
}

// driverIDs returns all driver ids in a deterministic order, so concurrent
// whole-roster operations acquire record locks in the same sequence.
func (s *Store) driverIDs() []uuid.UUID {
	s.gate.RLock()
	ids := make([]uuid.UUID, 0, len(s.drivers))
	for id := range s.drivers {
		ids = append(ids, id)
	}
	s.gate.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

func (s *Store) orderIDs() []uuid.UUID {
	s.gate.RLock()
	ids := make([]uuid.UUID, 0, len(s.orders))
	for id := range s.orders {
		ids = append(ids, id)
	}
	s.gate.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// snapshotOrders returns the committed order aggregates for query handlers.
func (s *Store) snapshotOrders() []*order.Order {
	s.gate.RLock()
	defer s.gate.RUnlock()

	orders := make([]*order.Order, 0, len(s.orders))
	for _, record := range s.orders {
		orders = append(orders, record.aggregate)
	}
	return orders
}

// snapshotDrivers returns the committed driver aggregates for query handlers.
func (s *Store) snapshotDrivers() []*driver.Driver {
	s.gate.RLock()
	defer s.gate.RUnlock()

	drivers := make([]*driver.Driver, 0, len(s.drivers))
	for _, record := range s.drivers {
		drivers = append(drivers, record.aggregate)
	}
	return drivers
}

// snapshotHandovers returns the committed handovers for query handlers.
func (s *Store) snapshotHandovers() []*cash.Handover {
	s.gate.RLock()
	defer s.gate.RUnlock()

	handovers := make([]*cash.Handover, 0, len(s.handovers))
	for _, record := range s.handovers {
		handovers = append(handovers, record.aggregate)
	}
	return handovers
}

// snapshotOrder returns one committed order, or nil.
func (s *Store) snapshotOrder(id uuid.UUID) *order.Order {
	s.gate.RLock()
	defer s.gate.RUnlock()

	record, ok := s.orders[id]
	if !ok {
		return nil
	}
	return record.aggregate
}
