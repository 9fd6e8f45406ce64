// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Orders map to two tables: the aggregate row and its
// append-only timeline entries.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Reference        string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	CustomerName     string     `gorm:"type:varchar(255);not null"`
	CustomerPhone    string     `gorm:"type:varchar(32)"`
	Address          string     `gorm:"type:text;not null"`
	CashDue          int64      `gorm:"not null"`
	CashCollected    int64      `gorm:"not null"`
	Status           string     `gorm:"type:varchar(16);not null;index"`
	AssignedDriverID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt        time.Time  `gorm:"not null;index"`
	Version          int64      `gorm:"not null"`

	Timeline []TimelineEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// TimelineEntryDTO represents one row of the order's transition history.
// Rows are only ever inserted; the (order_id, seq) key makes re-saving an
// aggregate idempotent for entries that already exist.
type TimelineEntryDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey"`
	Status     string    `gorm:"type:varchar(16);not null"`
	RecordedAt time.Time `gorm:"not null"`
	Note       string    `gorm:"type:text"`
}

// TableName overrides GORM's default naming to use "order_timeline_entries".
func (TimelineEntryDTO) TableName() string {
	return "order_timeline_entries"
}

// fromDomain converts an order aggregate to its database representation.
// The version is supplied by the repository from unit-of-work bookkeeping.
func fromDomain(aggregate *order.Order, version int64) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var driverID *uuid.UUID
	if assigned := aggregate.AssignedDriverID(); assigned != nil {
		raw := assigned.Bytes()
		driverID = &raw
	}

	timeline := aggregate.Timeline()
	entries := make([]TimelineEntryDTO, 0, len(timeline))
	for seq, entry := range timeline {
		entries = append(entries, TimelineEntryDTO{
			OrderID:    orderID,
			Seq:        seq,
			Status:     entry.Status().String(),
			RecordedAt: entry.Timestamp(),
			Note:       entry.Note(),
		})
	}

	return OrderDTO{
		ID:               orderID,
		Reference:        aggregate.Reference(),
		CustomerName:     aggregate.CustomerName(),
		CustomerPhone:    aggregate.CustomerPhone(),
		Address:          aggregate.Address(),
		CashDue:          aggregate.CashDue().Amount(),
		CashCollected:    aggregate.CashCollected().Amount(),
		Status:           aggregate.Status().String(),
		AssignedDriverID: driverID,
		CreatedAt:        timeline[0].Timestamp(),
		Version:          version,
	}
}

// toDomain converts a database DTO to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	cashDue, err := kernel.NewMoney(dto.CashDue)
	if err != nil {
		return nil, err
	}
	cashCollected, err := kernel.NewMoney(dto.CashCollected)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.AssignedDriverID != nil {
		assigned, idErr := kernel.UUIDFromBytes((*dto.AssignedDriverID)[:])
		if idErr != nil {
			return nil, idErr
		}
		driverID = &assigned
	}

	timeline := make([]order.TimelineEntry, 0, len(dto.Timeline))
	for _, entryDTO := range dto.Timeline {
		entryStatus, entryErr := order.StatusFromString(entryDTO.Status)
		if entryErr != nil {
			return nil, entryErr
		}
		entry, entryErr := order.NewTimelineEntry(entryStatus, entryDTO.RecordedAt, entryDTO.Note)
		if entryErr != nil {
			return nil, entryErr
		}
		timeline = append(timeline, entry)
	}

	return order.RestoreOrder(
		id,
		dto.Reference,
		dto.CustomerName,
		dto.CustomerPhone,
		dto.Address,
		cashDue,
		cashCollected,
		status,
		driverID,
		timeline,
	)
}
