package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/pause"
)

// PauseRepository defines the persistence contract for pause records.
type PauseRepository interface {
	Add(ctx context.Context, p *pause.Pause) error
	Update(ctx context.Context, p *pause.Pause) error
	Get(ctx context.Context, id kernel.UUID) (*pause.Pause, error)

	// GetOpenByOrder returns the open pause of an order, or nil when there is none.
	GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*pause.Pause, error)

	// ListByOrder returns every pause of an order ordered by start time.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*pause.Pause, error)

	DeleteByOrder(ctx context.Context, orderID kernel.UUID) error
}
