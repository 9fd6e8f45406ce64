package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrAlreadyAssigned is returned when assigning an order that is not
	// pending or already has a driver.
	ErrAlreadyAssigned = errors.New("order is not eligible for assignment")

	// ErrNotAssigned is returned when an operation requires an assigned
	// driver and the order has none.
	ErrNotAssigned = errors.New("order has no assigned driver")

	// ErrOrderNotReleasable is returned when releasing an order that is
	// neither pending nor terminal. In-flight orders must reach delivered or
	// returned before the driver binding can be released.
	ErrOrderNotReleasable = errors.New("order cannot be released in its current status")
)

// OverCollectPolicy decides whether cashCollected may exceed cashDue.
type OverCollectPolicy int

const (
	// OverCollectForbid rejects any delta that would push the collected
	// total above the amount due.
	OverCollectForbid OverCollectPolicy = iota

	// OverCollectWithNote allows over-collection (change-making and similar
	// field realities) only when the transition carries a note recording the
	// override, keeping it auditable in the timeline.
	OverCollectWithNote
)

// Order is the aggregate root for a single delivery task with a
// cash-on-delivery amount and a status lifecycle.
//
// Invariants maintained by the aggregate:
//   - Status moves only along pending → accepted → picked_up → in_transit →
//     {delivered, returned}; the transition gate is TransitionTo.
//   - The timeline is append-only, timestamps non-decreasing, and its last
//     entry always matches the current status.
//   - cashCollected is monotone non-decreasing and exceeds cashDue only when
//     the transition note records the override.
//   - assignedDriverID is nil only while pending.
//
// The dual consistency between assignedDriverID and the driver's active set
// is enforced one level up: every mutation path that touches one side inside
// a unit of work must touch the other.
type Order struct {
	id               kernel.UUID
	reference        string
	customerName     string
	customerPhone    string
	address          string
	cashDue          kernel.Money
	cashCollected    kernel.Money
	status           Status
	assignedDriverID *kernel.UUID
	timeline         []TimelineEntry
	guard            guard.ConstructorGuard
}

// NewOrder creates an order in Pending status with a single creation timeline
// entry. The reference is the human-readable code shown to dispatch staff.
func NewOrder(
	id kernel.UUID,
	reference string,
	customerName string,
	customerPhone string,
	address string,
	cashDue kernel.Money,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setReference(reference),
		o.setCustomer(customerName, customerPhone, address),
	); err != nil {
		return nil, err
	}

	entry, err := NewTimelineEntry(Pending, createdAt, "")
	if err != nil {
		return nil, err
	}

	o.cashDue = cashDue
	o.timeline = []TimelineEntry{entry}
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, validating that the
// stored state still satisfies the aggregate invariants.
func RestoreOrder(
	id kernel.UUID,
	reference string,
	customerName string,
	customerPhone string,
	address string,
	cashDue kernel.Money,
	cashCollected kernel.Money,
	status Status,
	assignedDriverID *kernel.UUID,
	timeline []TimelineEntry,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setReference(reference),
		o.setCustomer(customerName, customerPhone, address),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if assignedDriverID != nil {
		if err := assignedDriverID.Validate(); err != nil {
			return nil, err
		}
		driverID := *assignedDriverID
		o.assignedDriverID = &driverID
	} else if status != Pending {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignedDriverId",
			fmt.Errorf("status %s requires an assigned driver", status))
	}

	if err := validateTimeline(timeline, status); err != nil {
		return nil, err
	}

	o.cashDue = cashDue
	o.cashCollected = cashCollected
	o.status = status
	o.timeline = append([]TimelineEntry(nil), timeline...)
	return o, nil
}

func validateTimeline(timeline []TimelineEntry, status Status) error {
	if len(timeline) == 0 {
		return errs.NewValueIsRequiredError("timeline")
	}
	for i := 1; i < len(timeline); i++ {
		if timeline[i].Timestamp().Before(timeline[i-1].Timestamp()) {
			return errs.NewValueIsInvalidErrorWithCause("timeline",
				fmt.Errorf("entry %d timestamp precedes entry %d", i, i-1))
		}
	}
	if last := timeline[len(timeline)-1].Status(); last != status {
		return errs.NewValueIsInvalidErrorWithCause("timeline",
			fmt.Errorf("last entry status %s does not match order status %s", last, status))
	}
	return nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Reference returns the human-readable order code.
func (o *Order) Reference() string {
	return o.reference
}

// CustomerName returns the recipient's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerPhone returns the recipient's phone number.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// CashDue returns the cash-on-delivery amount, fixed at creation.
func (o *Order) CashDue() kernel.Money {
	return o.cashDue
}

// CashCollected returns the cash collected so far.
func (o *Order) CashCollected() kernel.Money {
	return o.cashCollected
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// AssignedDriverID returns a copy of the assigned driver's id, or nil while
// the order is unassigned.
func (o *Order) AssignedDriverID() *kernel.UUID {
	if o.assignedDriverID == nil {
		return nil
	}
	id := *o.assignedDriverID
	return &id
}

// Timeline returns a copy of the transition history, earliest first.
func (o *Order) Timeline() []TimelineEntry {
	return append([]TimelineEntry(nil), o.timeline...)
}

// Assign binds a driver to the order. Only a pending, unassigned order is
// eligible; anything else fails with ErrAlreadyAssigned and no mutation.
// Acceptance is a separate transition driven by the driver's own action, so
// the status stays Pending.
func (o *Order) Assign(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.status != Pending || o.assignedDriverID != nil {
		return fmt.Errorf("%w: order %s is %s", ErrAlreadyAssigned, o.reference, o.describeAssignment())
	}
	o.assignedDriverID = &driverID
	return nil
}

func (o *Order) describeAssignment() string {
	if o.assignedDriverID != nil {
		return fmt.Sprintf("already assigned to driver %s", *o.assignedDriverID)
	}
	return fmt.Sprintf("in status %s", o.status)
}

// TransitionTo advances the order to the requested status, appending a
// timeline entry and applying the cash delta.
//
// Rules enforced here:
//   - requested must be the legal successor of the current status
//     (ErrInvalidTransition otherwise, no mutation);
//   - leaving Pending requires an assigned driver (ErrNotAssigned);
//   - the cash delta may not drive the collected total negative, and may
//     exceed cashDue only under OverCollectWithNote with a non-empty note;
//   - the entry timestamp never regresses: an earlier clock reading is
//     clamped to the last entry's timestamp.
//
// A terminal transition leaves the driver binding untouched; releasing the
// driver is a separate, explicit operation so history still shows who
// delivered or returned the order.
func (o *Order) TransitionTo(
	requested Status,
	at time.Time,
	cashDelta int64,
	note string,
	policy OverCollectPolicy,
) error {
	newStatus, err := o.status.TransitionTo(requested)
	if err != nil {
		return err
	}

	if o.status == Pending && o.assignedDriverID == nil {
		return fmt.Errorf("%w: order %s cannot be accepted", ErrNotAssigned, o.reference)
	}

	newCollected, err := o.cashCollected.Add(cashDelta)
	if err != nil {
		return err
	}
	if newCollected.GreaterThan(o.cashDue) {
		if policy != OverCollectWithNote || note == "" {
			return errs.NewValueIsOutOfRangeError("cashCollected",
				newCollected.Amount(), 0, o.cashDue.Amount())
		}
	}

	if last := o.timeline[len(o.timeline)-1].Timestamp(); at.Before(last) {
		at = last
	}
	entry, err := NewTimelineEntry(newStatus, at, note)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cashCollected = newCollected
	o.timeline = append(o.timeline, entry)
	return nil
}

// Release unbinds the order from its driver's active set and returns the
// driver id that was released.
//
// For a pending order the assignment itself is undone (assignedDriverID is
// cleared) so dispatch can hand the order to someone else. For a terminal
// order only the driver's active set shrinks; assignedDriverID is kept for
// audit. In-flight orders are not releasable.
func (o *Order) Release() (kernel.UUID, error) {
	if o.assignedDriverID == nil {
		return kernel.UUID{}, fmt.Errorf("%w: order %s", ErrNotAssigned, o.reference)
	}
	driverID := *o.assignedDriverID

	switch {
	case o.status == Pending:
		o.assignedDriverID = nil
	case o.status.IsTerminal():
		// Keep the binding for audit; only the driver side is released.
	default:
		return kernel.UUID{}, fmt.Errorf("%w: status is %s", ErrOrderNotReleasable, o.status)
	}
	return driverID, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setReference(reference string) error {
	if reference == "" {
		return errs.NewValueIsRequiredError("reference")
	}
	o.reference = reference
	return nil
}

func (o *Order) setCustomer(name, phone, address string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.customerName = name
	o.customerPhone = phone
	o.address = address
	return nil
}
