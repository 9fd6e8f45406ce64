package driver

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrDriverIsNotConstructed is returned when a Driver instance was not
	// created through NewDriver or RestoreDriver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver")

	// ErrOrderAlreadyHeld is returned when adding an order id that is
	// already in the driver's active set.
	ErrOrderAlreadyHeld = errors.New("order is already in the driver's active set")

	// ErrOrderNotHeld is returned when removing an order id that is not in
	// the driver's active set.
	ErrOrderNotHeld = errors.New("order is not in the driver's active set")
)

// LocationFix is the driver's last known position and when it was reported.
type LocationFix struct {
	location   kernel.Location
	reportedAt time.Time
}

// NewLocationFix creates a fix from an already-validated location.
func NewLocationFix(location kernel.Location, reportedAt time.Time) (LocationFix, error) {
	if reportedAt.IsZero() {
		return LocationFix{}, errs.NewValueIsRequiredError("reportedAt")
	}
	return LocationFix{location: location, reportedAt: reportedAt}, nil
}

// Location returns the coordinates of the fix.
func (f LocationFix) Location() kernel.Location {
	return f.location
}

// ReportedAt returns when the fix was reported.
func (f LocationFix) ReportedAt() time.Time {
	return f.reportedAt
}

// Driver is the aggregate root for a field courier: identity, last known
// location, and the set of orders currently assigned and not yet released.
//
// The active-order set is one half of a fact stored twice (the other half is
// Order.assignedDriverID); both halves are mutated inside the same unit of
// work so neither direction ever dangles.
type Driver struct {
	id             kernel.UUID
	name           string
	vehiclePlate   string
	phone          string
	lastFix        *LocationFix
	activeOrderIDs []kernel.UUID
	activity       Activity
	guard          guard.ConstructorGuard
}

// NewDriver creates a driver with no location fix and an empty active set.
// A fresh driver classifies as Offline until the first report arrives.
func NewDriver(id kernel.UUID, name, vehiclePlate, phone string) (*Driver, error) {
	d := &Driver{
		activity: Offline,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setVehiclePlate(vehiclePlate),
	); err != nil {
		return nil, err
	}

	d.phone = phone
	return d, nil
}

// RestoreDriver reconstructs a driver from persistence.
func RestoreDriver(
	id kernel.UUID,
	name string,
	vehiclePlate string,
	phone string,
	lastFix *LocationFix,
	activity Activity,
	activeOrderIDs []kernel.UUID,
) (*Driver, error) {
	d, err := NewDriver(id, name, vehiclePlate, phone)
	if err != nil {
		return nil, err
	}
	if err := activity.Validate(); err != nil {
		return nil, err
	}
	d.activity = activity

	if lastFix != nil {
		fix := *lastFix
		d.lastFix = &fix
	}
	for _, orderID := range activeOrderIDs {
		if err := d.TakeOrder(orderID); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Validate ensures the Driver was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by identity.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's name.
func (d *Driver) Name() string {
	return d.name
}

// VehiclePlate returns the vehicle registration plate.
func (d *Driver) VehiclePlate() string {
	return d.vehiclePlate
}

// Phone returns the driver's phone number.
func (d *Driver) Phone() string {
	return d.phone
}

// LastFix returns a copy of the last known location fix, or nil if the
// driver has never reported.
func (d *Driver) LastFix() *LocationFix {
	if d.lastFix == nil {
		return nil
	}
	fix := *d.lastFix
	return &fix
}

// ActiveOrderIDs returns a copy of the active-order set.
func (d *Driver) ActiveOrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), d.activeOrderIDs...)
}

// Holds reports whether the order id is in the driver's active set.
func (d *Driver) Holds(orderID kernel.UUID) bool {
	for _, id := range d.activeOrderIDs {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// ReportFix overwrites the last known location with a new fix and marks the
// driver active. This is the highest-frequency write in the system; it
// touches nothing but the fix and the activity projection.
func (d *Driver) ReportFix(location kernel.Location, at time.Time) error {
	fix, err := NewLocationFix(location, at)
	if err != nil {
		return err
	}
	d.lastFix = &fix
	d.activity = Active
	return nil
}

// Activity returns the stored activity projection, last refreshed by a fix
// report or the periodic sweep. Readers that need the authoritative answer
// use ActivityAt, which derives it from the fix timestamp.
func (d *Driver) Activity() Activity {
	return d.activity
}

// ActivityAt classifies the driver's liveness at the given instant from the
// recency of the last fix. This derivation, not the stored projection, is
// what read paths report: a driver that simply stops reporting must still be
// observed as stale.
func (d *Driver) ActivityAt(now time.Time, policy FreshnessPolicy) Activity {
	if d.lastFix == nil {
		return policy.Classify(time.Time{}, now)
	}
	return policy.Classify(d.lastFix.ReportedAt(), now)
}

// RefreshActivity re-derives the stored projection from the fix recency and
// reports whether it changed. The periodic sweep persists drivers for which
// this returns true, so external consumers of the store converge on the same
// classification as read-time derivation.
func (d *Driver) RefreshActivity(now time.Time, policy FreshnessPolicy) bool {
	derived := d.ActivityAt(now, policy)
	if derived == d.activity {
		return false
	}
	d.activity = derived
	return true
}

// TakeOrder adds an order id to the active set.
func (d *Driver) TakeOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if d.Holds(orderID) {
		return fmt.Errorf("%w: order %s, driver %s", ErrOrderAlreadyHeld, orderID, d.id)
	}
	d.activeOrderIDs = append(d.activeOrderIDs, orderID)
	return nil
}

// ReleaseOrder removes an order id from the active set.
func (d *Driver) ReleaseOrder(orderID kernel.UUID) error {
	for i, id := range d.activeOrderIDs {
		if id.IsEqual(orderID) {
			d.activeOrderIDs = append(d.activeOrderIDs[:i], d.activeOrderIDs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: order %s, driver %s", ErrOrderNotHeld, orderID, d.id)
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}

func (d *Driver) setVehiclePlate(plate string) error {
	if plate == "" {
		return errs.NewValueIsRequiredError("vehiclePlate")
	}
	d.vehiclePlate = plate
	return nil
}
