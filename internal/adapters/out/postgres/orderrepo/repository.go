package orderrepo

import (
	"context"
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateError(err, dto)
	}
	return nil
}

// Update writes every column of an existing order, zero values included.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return translateError(result.Error, dto)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("order", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetStarted locks and returns the Started order, or nil.
func (r *GormOrderRepository) GetStarted(ctx context.Context) (*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", int(order.Started)).
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

// List retrieves orders newest first, optionally filtered by status.
func (r *GormOrderRepository) List(ctx context.Context, status *order.Status) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("code")
	if status != nil {
		query = query.Where("status = ?", int(*status))
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// translateError maps unique index violations to conflicts.
func translateError(err error, dto OrderDTO) error {
	var stateErr interface{ SQLState() string }
	if !errors.Is(err, gorm.ErrDuplicatedKey) &&
		(!errors.As(err, &stateErr) || stateErr.SQLState() != uniqueViolation) {
		return err
	}

	if strings.Contains(err.Error(), SingleStartedIndex) {
		return errs.NewConflictErrorWithCause("order", "another order is already started", err)
	}
	return errs.NewConflictErrorWithCause("code", "order code "+dto.Code+" already exists", err)
}
