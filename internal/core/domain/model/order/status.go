package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a requested status is not a legal
// successor of the order's current status. The state machine is the single
// authoritative gate: whatever a client requests, only the adjacency below
// is accepted.
var ErrInvalidTransition = fmt.Errorf("invalid status transition")

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Accepted ──> PickedUp ──> InTransit ──┬──> Delivered
//	                                                  └──> Returned
//
// Delivered and Returned are terminal. There are no backward transitions and
// no skipping: every state has exactly one legal successor except InTransit,
// which has two.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: created, possibly assigned, not yet
	// confirmed by a driver.
	Pending

	// Accepted means the assigned driver confirmed the order.
	Accepted

	// PickedUp means the driver collected the parcel.
	PickedUp

	// InTransit means the parcel is on its way to the customer.
	InTransit

	// Delivered is the successful terminal status.
	Delivered

	// Returned is the unsuccessful terminal status (parcel came back).
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Returned:  "returned",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Accepted:  "accepted",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Returned:  "returned",
	}
}

// StatusFromString parses the wire representation of a status.
// Returns a ValueIsInvalidError for unrecognized input.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation ("pending", "picked_up", ...).
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned
}

// successors returns the legal next statuses for s.
func (s Status) successors() []Status {
	switch s {
	case Pending:
		return []Status{Accepted}
	case Accepted:
		return []Status{PickedUp}
	case PickedUp:
		return []Status{InTransit}
	case InTransit:
		return []Status{Delivered, Returned}
	default:
		return nil
	}
}

// CanTransitionTo reports whether requested is a legal successor of s.
func (s Status) CanTransitionTo(requested Status) bool {
	for _, next := range s.successors() {
		if next == requested {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition, returning the new status.
// Any request that is not a legal successor fails with ErrInvalidTransition
// and leaves the caller's state untouched.
func (s Status) TransitionTo(requested Status) (Status, error) {
	if err := requested.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(requested) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, requested)
	}
	return requested, nil
}
