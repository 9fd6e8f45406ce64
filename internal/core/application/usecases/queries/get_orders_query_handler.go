package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves order summaries from postgres with raw SQL,
// bypassing the aggregate layer. Results are sorted oldest first so the
// dispatch board shows the longest-waiting orders on top.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a postgres-backed handler for order
// summaries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query, applying the optional driver and status filters.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			reference,
			customer_name,
			address,
			status,
			assigned_driver_id,
			cash_due,
			cash_collected,
			created_at
		FROM orders
	`
	var args []any
	var conditions []string
	if driverID := query.DriverID(); driverID != nil {
		conditions = append(conditions, "assigned_driver_id = ?")
		args = append(args, driverID.Bytes())
	}
	if status := query.Status(); status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, status.String())
	}
	for i, condition := range conditions {
		if i == 0 {
			sql += " WHERE " + condition
		} else {
			sql += " AND " + condition
		}
	}
	sql += " ORDER BY created_at, id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var summary GetOrdersQueryResponse
		var id uuid.UUID
		var driverID uuid.NullUUID
		var status string

		err = rows.Scan(
			&id,
			&summary.Reference,
			&summary.CustomerName,
			&summary.Address,
			&status,
			&driverID,
			&summary.CashDue,
			&summary.CashCollected,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = orderID

		summary.Status, err = order.StatusFromString(status)
		if err != nil {
			return nil, err
		}

		if driverID.Valid {
			assignedID, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			summary.AssignedDriverID = &assignedID
		}

		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
