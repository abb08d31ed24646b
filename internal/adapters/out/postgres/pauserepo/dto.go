// Package pauserepo persists pause records with GORM.
package pauserepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/pause"

	"github.com/google/uuid"
)

// SingleOpenIndex is the partial unique index that allows one open pause per order.
const SingleOpenIndex = "idx_pauses_single_open"

type PauseDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID `gorm:"type:uuid;not null;index:idx_pauses_order_started,priority:1;uniqueIndex:idx_pauses_single_open,where:ended_at IS NULL"`
	Type                 string    `gorm:"not null"`
	CountsTowardDowntime bool
	Comment              string
	StartedAt            time.Time `gorm:"not null;index:idx_pauses_order_started,priority:2"`
	EndedAt              *time.Time
	DurationMinutes      *int
}

func (PauseDTO) TableName() string {
	return "pauses"
}

func fromDomain(p *pause.Pause) PauseDTO {
	return PauseDTO{
		ID:                   p.ID().Bytes(),
		OrderID:              p.OrderID().Bytes(),
		Type:                 p.Type().String(),
		CountsTowardDowntime: p.CountsTowardDowntime(),
		Comment:              p.Comment(),
		StartedAt:            p.StartedAt(),
		EndedAt:              p.EndedAt(),
		DurationMinutes:      p.DurationMinutes(),
	}
}

func toDomain(dto PauseDTO) (*pause.Pause, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return pause.Restore(
		id,
		orderID,
		pause.Type(dto.Type),
		dto.CountsTowardDowntime,
		dto.Comment,
		dto.StartedAt,
		dto.EndedAt,
		dto.DurationMinutes,
	)
}
