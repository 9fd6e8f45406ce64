package commands

import (
	"context"

	"dispatch/internal/observability"
)

// ResolveHandoverCommandHandler applies finance's verdict to a pending
// handover. Resolution happens exactly once: concurrent attempts serialize on
// the handover record and the loser observes cash.ErrAlreadyResolved.
type ResolveHandoverCommandHandler struct {
	uowFactory HandoverUoWFactory
}

// NewResolveHandoverCommandHandler creates a handler for handover resolution.
func NewResolveHandoverCommandHandler(uowFactory HandoverUoWFactory) ResolveHandoverCommandHandler {
	return ResolveHandoverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resolution command. Fails with ErrObjectNotFound for
// an unknown handover and cash.ErrAlreadyResolved for one already decided.
func (h ResolveHandoverCommandHandler) Handle(ctx context.Context, cmd ResolveHandoverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	resolved, err := uow.HandoverRepository().Get(ctx, cmd.HandoverID())
	if err != nil {
		return err
	}

	if err = resolved.Resolve(cmd.Outcome()); err != nil {
		return err
	}

	if err = uow.HandoverRepository().Update(ctx, resolved); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	observability.HandoversTotal.WithLabelValues(resolved.Status().String()).Inc()
	return nil
}
