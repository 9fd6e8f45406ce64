package inmem

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

type orderRepository struct {
	uow *UnitOfWork
}

// Add stages a new order. The record joins the arena at commit.
func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	staged, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}
	r.uow.stagedOrders[aggregate.ID().Bytes()] = staged
	return nil
}

// Update stages changes to an existing order, locking its record if this
// unit of work does not hold it yet.
func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().Bytes()
	if _, isNew := r.uow.stagedOrders[id]; !isNew {
		if r.uow.lockOrder(id) == nil {
			return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
		}
	}

	staged, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}
	r.uow.stagedOrders[id] = staged
	return nil
}

// Get locks the order's record and returns a private clone. The lock is held
// until the unit of work finishes, so concurrent writers to the same order
// serialize here.
func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	raw := id.Bytes()
	if staged, ok := r.uow.stagedOrders[raw]; ok {
		return cloneOrder(staged)
	}

	record := r.uow.lockOrder(raw)
	if record == nil {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return cloneOrder(record.aggregate)
}

// GetFirstUnassignedPending scans for the oldest pending order without a
// driver, then locks it. The scan inspects records under brief locks; by the
// time the candidate's lock is finally taken another writer may have claimed
// it, so the result is re-checked and the scan repeats until a candidate
// survives or the backlog is exhausted.
func (r *orderRepository) GetFirstUnassignedPending(_ context.Context) (*order.Order, error) {
	for {
		candidate, found := r.scanOldestUnassigned()
		if !found {
			return nil, errs.NewObjectNotFoundError("order", "unassigned pending")
		}

		record := r.uow.lockOrder(candidate)
		if record == nil {
			continue
		}
		aggregate := r.currentOrder(candidate, record)
		if aggregate.Status() == order.Pending && aggregate.AssignedDriverID() == nil {
			return cloneOrder(aggregate)
		}
	}
}

// currentOrder returns this unit of work's view of a locked record: the
// staged version if one exists, the committed aggregate otherwise.
func (r *orderRepository) currentOrder(id uuid.UUID, record *orderRecord) *order.Order {
	if staged, ok := r.uow.stagedOrders[id]; ok {
		return staged
	}
	return record.aggregate
}

func (r *orderRepository) scanOldestUnassigned() (uuid.UUID, bool) {
	var (
		oldestID uuid.UUID
		oldestAt time.Time
		found    bool
	)

	for _, id := range r.uow.store.orderIDs() {
		var aggregate *order.Order
		if record, held := r.uow.heldOrders[id]; held {
			aggregate = r.currentOrder(id, record)
		} else {
			record := r.uow.store.orderRecord(id)
			if record == nil {
				continue
			}
			record.mu.Lock()
			aggregate = record.aggregate
			record.mu.Unlock()
		}

		if aggregate.Status() != order.Pending || aggregate.AssignedDriverID() != nil {
			continue
		}
		createdAt := aggregate.Timeline()[0].Timestamp()
		if !found || createdAt.Before(oldestAt) {
			oldestID = id
			oldestAt = createdAt
			found = true
		}
	}

	return oldestID, found
}
