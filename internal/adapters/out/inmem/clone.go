package inmem

import (
	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
)

// Units of work never hand out the stored aggregate itself: repositories
// return clones, handlers mutate the clones, and commit swaps them in. The
// restore constructors double as deep copies and re-check the invariants on
// the way through.

func cloneOrder(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(),
		o.Reference(),
		o.CustomerName(),
		o.CustomerPhone(),
		o.Address(),
		o.CashDue(),
		o.CashCollected(),
		o.Status(),
		o.AssignedDriverID(),
		o.Timeline(),
	)
}

func cloneDriver(d *driver.Driver) (*driver.Driver, error) {
	return driver.RestoreDriver(
		d.ID(),
		d.Name(),
		d.VehiclePlate(),
		d.Phone(),
		d.LastFix(),
		d.Activity(),
		d.ActiveOrderIDs(),
	)
}

func cloneHandover(h *cash.Handover) (*cash.Handover, error) {
	return cash.RestoreHandover(
		h.ID(),
		h.DriverID(),
		h.Amount(),
		h.Notes(),
		h.ReportedAt(),
		h.Status(),
	)
}
