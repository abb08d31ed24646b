package pauserepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/pause"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormPauseRepository implements ports.PauseRepository using GORM.
type GormPauseRepository struct {
	db *gorm.DB
}

func NewGormPauseRepository(db *gorm.DB) *GormPauseRepository {
	return &GormPauseRepository{db: db}
}

// Add saves a new pause. A second open pause for the same order is a conflict.
func (r *GormPauseRepository) Add(ctx context.Context, p *pause.Pause) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("pause", "order "+p.OrderID().String()+" already has an open pause", err)
		}
		return err
	}
	return nil
}

func (r *GormPauseRepository) Update(ctx context.Context, p *pause.Pause) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&PauseDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "order_id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("pause", p.ID().String(), gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *GormPauseRepository) Get(ctx context.Context, id kernel.UUID) (*pause.Pause, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PauseDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pause", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPauseRepository) GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*pause.Pause, error) {
	var dtos []PauseDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND ended_at IS NULL", orderID.Bytes()).
		Limit(1).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	return toDomain(dtos[0])
}

func (r *GormPauseRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*pause.Pause, error) {
	var dtos []PauseDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("started_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	pauses := make([]*pause.Pause, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		pauses = append(pauses, p)
	}
	return pauses, nil
}

func (r *GormPauseRepository) DeleteByOrder(ctx context.Context, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).Delete(&PauseDTO{}, "order_id = ?", orderID.Bytes()).Error
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var stateErr interface{ SQLState() string }
	return errors.As(err, &stateErr) && stateErr.SQLState() == uniqueViolation
}
