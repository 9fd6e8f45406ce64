package commands

import (
	"context"

	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/observability"
)

// RegisterHandoverCommandHandler records cash handovers. The reporting driver
// must exist but need not hold active orders: cash is often handed over after
// a shift ends. The handover amount is a driver's claim about physical cash;
// it is never cross-checked against order collection figures here.
type RegisterHandoverCommandHandler struct {
	uowFactory HandoverUoWFactory
	clock      ports.Clock
}

// NewRegisterHandoverCommandHandler creates a handler for handover
// registration.
func NewRegisterHandoverCommandHandler(uowFactory HandoverUoWFactory, clock ports.Clock) RegisterHandoverCommandHandler {
	return RegisterHandoverCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the registration and returns the pending handover.
// Fails with ErrObjectNotFound when the driver is unknown.
func (h RegisterHandoverCommandHandler) Handle(ctx context.Context, cmd RegisterHandoverCommand) (*cash.Handover, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	reporter, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	registered, err := cash.NewHandover(
		kernel.NewUUID(),
		reporter.ID(),
		cmd.Amount(),
		cmd.Notes(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.HandoverRepository().Add(ctx, registered); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	observability.HandoversTotal.WithLabelValues(registered.Status().String()).Inc()
	return registered, nil
}
