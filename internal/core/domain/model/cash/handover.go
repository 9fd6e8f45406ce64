package cash

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrHandoverIsNotConstructed is returned when a Handover instance was not
// created through NewHandover or RestoreHandover.
var ErrHandoverIsNotConstructed = errors.New("Handover must be created via NewHandover or RestoreHandover")

// Handover is the aggregate root for a driver's report of cash physically
// delivered to finance. It is created pending and resolved exactly once.
//
// Handovers are a ledger independent of order-level collection figures:
// resolving one records that money reached finance, it never rewrites
// Order.cashCollected.
type Handover struct {
	id         kernel.UUID
	driverID   kernel.UUID
	amount     kernel.Money
	notes      string
	reportedAt time.Time
	status     Status
	guard      guard.ConstructorGuard
}

// NewHandover creates a pending handover. The reporting driver must exist
// (checked by the caller against the driver store) but need not hold any
// active orders: cash is often handed over after a shift ends.
func NewHandover(
	id kernel.UUID,
	driverID kernel.UUID,
	amount kernel.Money,
	notes string,
	reportedAt time.Time,
) (*Handover, error) {
	h := &Handover{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		h.setID(id),
		h.setDriverID(driverID),
		h.setReportedAt(reportedAt),
	); err != nil {
		return nil, err
	}

	h.amount = amount
	h.notes = notes
	return h, nil
}

// RestoreHandover reconstructs a handover from persistence.
func RestoreHandover(
	id kernel.UUID,
	driverID kernel.UUID,
	amount kernel.Money,
	notes string,
	reportedAt time.Time,
	status Status,
) (*Handover, error) {
	h, err := NewHandover(id, driverID, amount, notes, reportedAt)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	h.status = status
	return h, nil
}

// Validate ensures the Handover was created through a constructor.
func (h *Handover) Validate() error {
	if h == nil {
		return ErrHandoverIsNotConstructed
	}
	return h.guard.Validate(ErrHandoverIsNotConstructed)
}

// ID returns the handover's unique identifier.
func (h *Handover) ID() kernel.UUID {
	return h.id
}

// DriverID returns the reporting driver's id.
func (h *Handover) DriverID() kernel.UUID {
	return h.driverID
}

// Amount returns the handed-over amount.
func (h *Handover) Amount() kernel.Money {
	return h.amount
}

// Notes returns the optional free-form notes.
func (h *Handover) Notes() string {
	return h.notes
}

// ReportedAt returns when the handover was registered. Immutable.
func (h *Handover) ReportedAt() time.Time {
	return h.reportedAt
}

// Status returns the reconciliation status.
func (h *Handover) Status() Status {
	return h.status
}

// Resolve sets the terminal outcome, exactly once. A second resolution
// attempt fails with ErrAlreadyResolved and leaves the recorded outcome
// untouched.
func (h *Handover) Resolve(outcome Status) error {
	if !outcome.IsResolution() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a terminal resolution", outcome))
	}
	if h.status != Pending {
		return fmt.Errorf("%w: handover %s is %s", ErrAlreadyResolved, h.id, h.status)
	}
	h.status = outcome
	return nil
}

func (h *Handover) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *Handover) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	h.driverID = driverID
	return nil
}

func (h *Handover) setReportedAt(reportedAt time.Time) error {
	if reportedAt.IsZero() {
		return errs.NewValueIsRequiredError("reportedAt")
	}
	h.reportedAt = reportedAt
	return nil
}
