// Package cleaningrepo persists cleaning orders with GORM.
package cleaningrepo

import (
	"time"

	"production/internal/core/domain/model/cleaning"
	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CleaningDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Description     string    `gorm:"type:text;not null"`
	Status          int       `gorm:"not null;index"`
	CreatedAt       time.Time `gorm:"not null;index"`
	StartedAt       *time.Time
	FinishedAt      *time.Time
	DurationSeconds *int
}

func (CleaningDTO) TableName() string {
	return "cleanings"
}

func fromDomain(c *cleaning.Cleaning) CleaningDTO {
	s := c.State()
	return CleaningDTO{
		ID:              s.ID.Bytes(),
		Description:     s.Description,
		Status:          int(s.Status),
		CreatedAt:       s.CreatedAt,
		StartedAt:       s.StartedAt,
		FinishedAt:      s.FinishedAt,
		DurationSeconds: s.DurationSeconds,
	}
}

func toDomain(dto CleaningDTO) (*cleaning.Cleaning, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return cleaning.RestoreCleaning(cleaning.State{
		ID:              id,
		Description:     dto.Description,
		Status:          cleaning.Status(dto.Status),
		CreatedAt:       dto.CreatedAt,
		StartedAt:       dto.StartedAt,
		FinishedAt:      dto.FinishedAt,
		DurationSeconds: dto.DurationSeconds,
	})
}
