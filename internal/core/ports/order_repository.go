// Package ports defines the contracts between the production domain and the
// infrastructure that stores orders and pauses and publishes their changes.
package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// A duplicate order code is reported as errs.ErrConflict.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Writing a second Started order is reported as errs.ErrConflict.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes an order. Pauses are removed through PauseRepository.DeleteByOrder.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetStarted returns the order currently in Started status, or nil when
	// there is none. Implementations lock the row for the rest of the transaction
	// so that two concurrent starts cannot both observe an idle line.
	//
	// Example:
	//   started, err := repo.GetStarted(ctx)
	//   if err != nil {
	//       return err
	//   }
	//   if started != nil && !started.ID().IsEqual(id) {
	//       return errs.NewConflictError("order", "another order is already started")
	//   }
	GetStarted(ctx context.Context) (*order.Order, error)

	// List returns orders, newest first. A nil status returns every order.
	List(ctx context.Context, status *order.Status) ([]*order.Order, error)
}
