// Package cashrepo provides data transfer objects and mapping functions for
// cash handover persistence.
package cashrepo

import (
	"time"

	"dispatch/internal/core/domain/model/cash"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// HandoverDTO represents the database structure for persisting cash
// handovers.
type HandoverDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount     int64     `gorm:"not null"`
	Notes      string    `gorm:"type:text"`
	ReportedAt time.Time `gorm:"not null;index"`
	Status     string    `gorm:"type:varchar(16);not null;index"`
	Version    int64     `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "cash_handovers".
func (HandoverDTO) TableName() string {
	return "cash_handovers"
}

// fromDomain converts a handover aggregate to its database representation.
func fromDomain(aggregate *cash.Handover, version int64) HandoverDTO {
	return HandoverDTO{
		ID:         aggregate.ID().Bytes(),
		DriverID:   aggregate.DriverID().Bytes(),
		Amount:     aggregate.Amount().Amount(),
		Notes:      aggregate.Notes(),
		ReportedAt: aggregate.ReportedAt(),
		Status:     aggregate.Status().String(),
		Version:    version,
	}
}

// toDomain converts a database DTO to a handover aggregate.
func toDomain(dto HandoverDTO) (*cash.Handover, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	status, err := cash.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return cash.RestoreHandover(id, driverID, amount, dto.Notes, dto.ReportedAt, status)
}
