package cleaningrepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/cleaning"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormCleaningRepository implements ports.CleaningRepository using GORM.
type GormCleaningRepository struct {
	db *gorm.DB
}

func NewGormCleaningRepository(db *gorm.DB) *GormCleaningRepository {
	return &GormCleaningRepository{db: db}
}

func (r *GormCleaningRepository) Add(ctx context.Context, c *cleaning.Cleaning) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("cleaning", "id "+c.ID().String()+" already exists", err)
		}
		return err
	}
	return nil
}

func (r *GormCleaningRepository) Update(ctx context.Context, c *cleaning.Cleaning) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&CleaningDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("cleaning", c.ID().String(), gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *GormCleaningRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&CleaningDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cleaning", id.String())
	}
	return nil
}

func (r *GormCleaningRepository) Get(ctx context.Context, id kernel.UUID) (*cleaning.Cleaning, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CleaningDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cleaning", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormCleaningRepository) List(ctx context.Context, status *cleaning.Status) ([]*cleaning.Cleaning, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if status != nil {
		query = query.Where("status = ?", int(*status))
	}

	var dtos []CleaningDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	cleanings := make([]*cleaning.Cleaning, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		cleanings = append(cleanings, c)
	}
	return cleanings, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var stateErr interface{ SQLState() string }
	return errors.As(err, &stateErr) && stateErr.SQLState() == uniqueViolation
}
