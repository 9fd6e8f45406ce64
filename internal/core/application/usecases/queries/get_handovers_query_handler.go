package queries

import (
	"context"

	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetHandoversQueryHandler retrieves the reconciliation worklist from
// postgres with raw SQL. Results are sorted newest first: finance works the
// most recent reports at the top.
type GetHandoversQueryHandler struct {
	db *gorm.DB
}

// NewGetHandoversQueryHandler creates a postgres-backed handler for the
// handover worklist.
func NewGetHandoversQueryHandler(db *gorm.DB) GetHandoversQueryHandler {
	return GetHandoversQueryHandler{db: db}
}

// Handle executes the query, applying the optional driver and status filters.
func (h GetHandoversQueryHandler) Handle(
	ctx context.Context,
	query GetHandoversQuery,
) ([]GetHandoversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			driver_id,
			amount,
			notes,
			reported_at,
			status
		FROM cash_handovers
	`
	var args []any
	var conditions []string
	if driverID := query.DriverID(); driverID != nil {
		conditions = append(conditions, "driver_id = ?")
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
	sql += " ORDER BY reported_at DESC, id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	handovers := make([]GetHandoversQueryResponse, 0)
	for rows.Next() {
		var worklist GetHandoversQueryResponse
		var id, driverID uuid.UUID
		var status string

		err = rows.Scan(
			&id,
			&driverID,
			&worklist.Amount,
			&worklist.Notes,
			&worklist.ReportedAt,
			&status,
		)
		if err != nil {
			return nil, err
		}

		handoverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		worklist.ID = handoverID

		reporterID, idErr := kernel.UUIDFromBytes(driverID[:])
		if idErr != nil {
			return nil, idErr
		}
		worklist.DriverID = reporterID

		worklist.Status, err = cash.StatusFromString(status)
		if err != nil {
			return nil, err
		}

		handovers = append(handovers, worklist)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return handovers, nil
}
