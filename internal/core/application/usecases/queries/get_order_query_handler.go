package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order with its complete timeline from
// postgres with raw SQL.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a postgres-backed handler for the order
// detail view.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError for unknown ids.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			reference,
			customer_name,
			customer_phone,
			address,
			status,
			assigned_driver_id,
			cash_due,
			cash_collected
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var detail GetOrderQueryResponse
	var id uuid.UUID
	var driverID uuid.NullUUID
	var status string

	err := row.Scan(
		&id,
		&detail.Reference,
		&detail.CustomerName,
		&detail.CustomerPhone,
		&detail.Address,
		&status,
		&driverID,
		&detail.CashDue,
		&detail.CashCollected,
	)
	if err != nil {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("orderId", query.OrderID(), err)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	detail.ID = orderID

	detail.Status, err = order.StatusFromString(status)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if driverID.Valid {
		assignedID, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return GetOrderQueryResponse{}, idErr
		}
		detail.AssignedDriverID = &assignedID
	}

	detail.Timeline, err = h.timeline(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return detail, nil
}

func (h GetOrderQueryHandler) timeline(ctx context.Context, orderID kernel.UUID) ([]TimelineEntryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, recorded_at, note
		FROM order_timeline_entries
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]TimelineEntryResponse, 0)
	for rows.Next() {
		var entry TimelineEntryResponse
		var status string

		if err = rows.Scan(&status, &entry.Timestamp, &entry.Note); err != nil {
			return nil, err
		}
		entry.Status, err = order.StatusFromString(status)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
