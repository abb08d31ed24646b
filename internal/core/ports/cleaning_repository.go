package ports

import (
	"context"

	"production/internal/core/domain/model/cleaning"
	"production/internal/core/domain/model/kernel"
)

// CleaningRepository persists cleaning orders.
type CleaningRepository interface {
	Add(ctx context.Context, aggregate *cleaning.Cleaning) error
	Update(ctx context.Context, aggregate *cleaning.Cleaning) error
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*cleaning.Cleaning, error)

	// List returns cleaning orders, newest first. A nil status returns all of them.
	List(ctx context.Context, status *cleaning.Status) ([]*cleaning.Cleaning, error)
}
