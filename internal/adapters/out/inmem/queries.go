package inmem

import (
	"context"
	"sort"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Query handlers for the embedded backend. They read committed aggregates
// under the store's read gate, so a commit in flight is observed either
// fully or not at all.

// GetOrdersQueryHandler serves order summaries from the store.
type GetOrdersQueryHandler struct {
	store *Store
}

// NewGetOrdersQueryHandler creates a store-backed handler for order
// summaries.
func NewGetOrdersQueryHandler(store *Store) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{store: store}
}

// Handle executes the query, applying the optional driver and status
// filters. Results are sorted oldest first.
func (h GetOrdersQueryHandler) Handle(
	_ context.Context,
	query queries.GetOrdersQuery,
) ([]queries.GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	summaries := make([]queries.GetOrdersQueryResponse, 0)
	for _, aggregate := range h.store.snapshotOrders() {
		assigned := aggregate.AssignedDriverID()
		if filter := query.DriverID(); filter != nil {
			if assigned == nil || !assigned.IsEqual(*filter) {
				continue
			}
		}
		if filter := query.Status(); filter != nil && aggregate.Status() != *filter {
			continue
		}

		summaries = append(summaries, queries.GetOrdersQueryResponse{
			ID:               aggregate.ID(),
			Reference:        aggregate.Reference(),
			CustomerName:     aggregate.CustomerName(),
			Address:          aggregate.Address(),
			Status:           aggregate.Status(),
			AssignedDriverID: assigned,
			CashDue:          aggregate.CashDue().Amount(),
			CashCollected:    aggregate.CashCollected().Amount(),
			CreatedAt:        aggregate.Timeline()[0].Timestamp(),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
		}
		return summaries[i].ID.String() < summaries[j].ID.String()
	})
	return summaries, nil
}

// GetOrderQueryHandler serves the order detail view from the store.
type GetOrderQueryHandler struct {
	store *Store
}

// NewGetOrderQueryHandler creates a store-backed handler for the order
// detail view.
func NewGetOrderQueryHandler(store *Store) GetOrderQueryHandler {
	return GetOrderQueryHandler{store: store}
}

// Handle executes the query. Returns an ObjectNotFoundError for unknown ids.
func (h GetOrderQueryHandler) Handle(
	_ context.Context,
	query queries.GetOrderQuery,
) (queries.GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return queries.GetOrderQueryResponse{}, err
	}

	aggregate := h.store.snapshotOrder(query.OrderID().Bytes())
	if aggregate == nil {
		return queries.GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	timeline := aggregate.Timeline()
	entries := make([]queries.TimelineEntryResponse, 0, len(timeline))
	for _, entry := range timeline {
		entries = append(entries, queries.TimelineEntryResponse{
			Status:    entry.Status(),
			Timestamp: entry.Timestamp(),
			Note:      entry.Note(),
		})
	}

	return queries.GetOrderQueryResponse{
		ID:               aggregate.ID(),
		Reference:        aggregate.Reference(),
		CustomerName:     aggregate.CustomerName(),
		CustomerPhone:    aggregate.CustomerPhone(),
		Address:          aggregate.Address(),
		Status:           aggregate.Status(),
		AssignedDriverID: aggregate.AssignedDriverID(),
		CashDue:          aggregate.CashDue().Amount(),
		CashCollected:    aggregate.CashCollected().Amount(),
		Timeline:         entries,
	}, nil
}

// GetDriversQueryHandler serves the driver roster from the store, deriving
// activity from fix recency at query time.
type GetDriversQueryHandler struct {
	store  *Store
	clock  ports.Clock
	policy driver.FreshnessPolicy
}

// NewGetDriversQueryHandler creates a store-backed handler for the driver
// roster.
func NewGetDriversQueryHandler(store *Store, clock ports.Clock, policy driver.FreshnessPolicy) GetDriversQueryHandler {
	return GetDriversQueryHandler{store: store, clock: clock, policy: policy}
}

// Handle executes the query. Results are sorted by name.
func (h GetDriversQueryHandler) Handle(
	_ context.Context,
	query queries.GetDriversQuery,
) ([]queries.GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()

	roster := make([]queries.GetDriversQueryResponse, 0)
	for _, aggregate := range h.store.snapshotDrivers() {
		entry := queries.GetDriversQueryResponse{
			ID:               aggregate.ID(),
			Name:             aggregate.Name(),
			VehiclePlate:     aggregate.VehiclePlate(),
			Phone:            aggregate.Phone(),
			Activity:         aggregate.ActivityAt(now, h.policy),
			ActiveOrderCount: len(aggregate.ActiveOrderIDs()),
		}
		if fix := aggregate.LastFix(); fix != nil {
			entry.LastFix = &queries.LastFixResponse{
				Latitude:   fix.Location().Latitude(),
				Longitude:  fix.Location().Longitude(),
				ReportedAt: fix.ReportedAt(),
			}
		}
		roster = append(roster, entry)
	}

	sort.Slice(roster, func(i, j int) bool {
		if roster[i].Name != roster[j].Name {
			return roster[i].Name < roster[j].Name
		}
		return roster[i].ID.String() < roster[j].ID.String()
	})
	return roster, nil
}

// GetHandoversQueryHandler serves the reconciliation worklist from the
// store.
type GetHandoversQueryHandler struct {
	store *Store
}

// NewGetHandoversQueryHandler creates a store-backed handler for the
// handover worklist.
func NewGetHandoversQueryHandler(store *Store) GetHandoversQueryHandler {
	return GetHandoversQueryHandler{store: store}
}

// Handle executes the query, applying the optional driver and status
// filters. Results are sorted newest first.
func (h GetHandoversQueryHandler) Handle(
	_ context.Context,
	query queries.GetHandoversQuery,
) ([]queries.GetHandoversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	worklist := make([]queries.GetHandoversQueryResponse, 0)
	for _, aggregate := range h.store.snapshotHandovers() {
		if filter := query.DriverID(); filter != nil && !aggregate.DriverID().IsEqual(*filter) {
			continue
		}
		if filter := query.Status(); filter != nil && aggregate.Status() != *filter {
			continue
		}

		worklist = append(worklist, queries.GetHandoversQueryResponse{
			ID:         aggregate.ID(),
			DriverID:   aggregate.DriverID(),
			Amount:     aggregate.Amount().Amount(),
			Notes:      aggregate.Notes(),
			ReportedAt: aggregate.ReportedAt(),
			Status:     aggregate.Status(),
		})
	}

	sort.Slice(worklist, func(i, j int) bool {
		if !worklist[i].ReportedAt.Equal(worklist[j].ReportedAt) {
			return worklist[i].ReportedAt.After(worklist[j].ReportedAt)
		}
		return worklist[i].ID.String() < worklist[j].ID.String()
	})
	return worklist, nil
}
