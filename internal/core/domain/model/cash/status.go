package cash

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrAlreadyResolved is returned when resolving a handover that is no longer
// pending. Approved and rejected are terminal: a resolution is recorded
// exactly once and never overwritten.
var ErrAlreadyResolved = errors.New("handover is already resolved")

// Status represents the reconciliation state of a cash handover.
//
// State transitions:
//
//	Pending ──┬──> Approved
//	          └──> Rejected
//
// Both outcomes are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the handover awaits back-office review.
	Pending

	// Approved means finance confirmed receipt of the cash.
	Approved

	// Rejected means finance disputed the handover.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "unknown",
		Pending:  "pending",
		Approved: "approved",
		Rejected: "rejected",
	}
}

// StatusFromString parses the wire representation of a handover status.
func StatusFromString(s string) (Status, error) {
	switch s {
	case "pending":
		return Pending, nil
	case "approved":
		return Approved, nil
	case "rejected":
		return Rejected, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid handover status", s))
	}
}

// Validate checks that the Status is a defined reconciliation state.
func (s Status) Validate() error {
	if s != Pending && s != Approved && s != Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsResolution reports whether s is a terminal outcome a reviewer may set.
func (s Status) IsResolution() bool {
	return s == Approved || s == Rejected
}
