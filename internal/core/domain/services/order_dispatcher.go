package services

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

// ErrNoDriverAvailable is returned when no candidate driver can take the
// order: none supplied, or none currently active.
var ErrNoDriverAvailable = errors.New("no driver available")

// OrderDispatcher is a domain service that selects the best driver for a
// pending order. Selection considers only drivers classified Active by the
// freshness policy and prefers the lightest current load, breaking ties by
// the most recent location fix (the driver most evidently on the move).
//
// The dispatcher mutates nothing itself; it returns the chosen candidate and
// leaves the dual-sided assignment to the command handler so both aggregates
// change inside one unit of work.
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch picks a driver for the order from the candidates.
// Returns ErrNoDriverAvailable if no active driver is present.
func (OrderDispatcher) Dispatch(
	o *order.Order,
	candidates []*driver.Driver,
	now time.Time,
	policy driver.FreshnessPolicy,
) (*driver.Driver, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Pending || o.AssignedDriverID() != nil {
		return nil, order.ErrAlreadyAssigned
	}

	var best *driver.Driver
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}
		if candidate.ActivityAt(now, policy) != driver.Active {
			continue
		}
		if best == nil || lighterLoaded(candidate, best) {
			best = candidate
		}
	}

	if best == nil {
		return nil, ErrNoDriverAvailable
	}
	return best, nil
}

func lighterLoaded(a, b *driver.Driver) bool {
	loadA, loadB := len(a.ActiveOrderIDs()), len(b.ActiveOrderIDs())
	if loadA != loadB {
		return loadA < loadB
	}
	// Equal load: prefer the fresher fix.
	fixA, fixB := a.LastFix(), b.LastFix()
	if fixA == nil || fixB == nil {
		return fixB == nil
	}
	return fixA.ReportedAt().After(fixB.ReportedAt())
}
