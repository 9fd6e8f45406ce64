package inmem

import (
	"context"

	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

type handoverRepository struct {
	uow *UnitOfWork
}

// Add stages a new handover. The record joins the arena at commit.
func (r *handoverRepository) Add(_ context.Context, aggregate *cash.Handover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	staged, err := cloneHandover(aggregate)
	if err != nil {
		return err
	}
	r.uow.stagedHandovers[aggregate.ID().Bytes()] = staged
	return nil
}

// Update stages the resolution of an existing handover.
func (r *handoverRepository) Update(_ context.Context, aggregate *cash.Handover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().Bytes()
	if _, isNew := r.uow.stagedHandovers[id]; !isNew {
		if r.uow.lockHandover(id) == nil {
			return errs.NewObjectNotFoundError("handoverId", aggregate.ID().String())
		}
	}

	staged, err := cloneHandover(aggregate)
	if err != nil {
		return err
	}
	r.uow.stagedHandovers[id] = staged
	return nil
}

// Get locks the handover's record and returns a private clone. Concurrent
// resolution attempts serialize on this lock; the second resolver sees the
// first one's outcome and fails with cash.ErrAlreadyResolved.
func (r *handoverRepository) Get(_ context.Context, id kernel.UUID) (*cash.Handover, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	raw := id.Bytes()
	if staged, ok := r.uow.stagedHandovers[raw]; ok {
		return cloneHandover(staged)
	}

	record := r.uow.lockHandover(raw)
	if record == nil {
		return nil, errs.NewObjectNotFoundError("handoverId", id.String())
	}
	return cloneHandover(record.aggregate)
}
