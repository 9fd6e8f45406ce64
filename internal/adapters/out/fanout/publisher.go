// Package fanout composes several event publishers behind one port.
package fanout

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
)

// Publisher forwards every event to all targets. Each target gets the event
// even when an earlier one fails; failures are joined into one error.
type Publisher struct {
	targets []ports.EventPublisher
}

// NewPublisher creates a fanout over the given targets. Nil targets are
// skipped so callers can pass optionally-configured publishers directly.
func NewPublisher(targets ...ports.EventPublisher) *Publisher {
	kept := make([]ports.EventPublisher, 0, len(targets))
	for _, target := range targets {
		if target != nil {
			kept = append(kept, target)
		}
	}
	return &Publisher{targets: kept}
}

func (p *Publisher) PublishOrderChanged(ctx context.Context, event ports.OrderChangedEvent) error {
	var errs []error
	for _, target := range p.targets {
		if err := target.PublishOrderChanged(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *Publisher) PublishDriverLocation(ctx context.Context, event ports.DriverLocationEvent) error {
	var errs []error
	for _, target := range p.targets {
		if err := target.PublishDriverLocation(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
