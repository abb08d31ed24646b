package memory

import (
	"context"
	"sort"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
)

type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	t, err := r.uow.tables()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	if _, exists := t.orders[aggregate.ID()]; exists {
		return errs.NewConflictError("order", "id "+aggregate.ID().String()+" already exists")
	}
	for _, s := range t.orders {
		if s.Code == aggregate.Code() {
			return errs.NewConflictError("code", "order code "+aggregate.Code()+" already exists")
		}
	}
	if err = checkSingleStarted(t, aggregate); err != nil {
		return err
	}

	t.orders[aggregate.ID()] = aggregate.State()
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	t, err := r.uow.tables()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	if _, exists := t.orders[aggregate.ID()]; !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if err = checkSingleStarted(t, aggregate); err != nil {
		return err
	}

	t.orders[aggregate.ID()] = aggregate.State()
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, id kernel.UUID) error {
	t, err := r.uow.tables()
	if err != nil {
		return err
	}
	if _, exists := t.orders[id]; !exists {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	delete(t.orders, id)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	t, err := r.uow.tables()
	if err != nil {
		return nil, err
	}

	s, exists := t.orders[id]
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(s)
}

func (r *OrderRepository) GetStarted(_ context.Context) (*order.Order, error) {
	t, err := r.uow.tables()
	if err != nil {
		return nil, err
	}

	for _, s := range t.orders {
		if s.Status == order.Started {
			return order.RestoreOrder(s)
		}
	}
	return nil, nil
}

func (r *OrderRepository) List(_ context.Context, status *order.Status) ([]*order.Order, error) {
	t, err := r.uow.tables()
	if err != nil {
		return nil, err
	}

	states := make([]order.State, 0, len(t.orders))
	for _, s := range t.orders {
		if status != nil && s.Status != *status {
			continue
		}
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool {
		if !states[i].CreatedAt.Equal(states[j].CreatedAt) {
			return states[i].CreatedAt.After(states[j].CreatedAt)
		}
		return states[i].Code < states[j].Code
	})

	orders := make([]*order.Order, 0, len(states))
	for _, s := range states {
		o, restoreErr := order.RestoreOrder(s)
		if restoreErr != nil {
			return nil, restoreErr
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// checkSingleStarted mirrors the partial unique index of the SQL schema.
func checkSingleStarted(t *tables, aggregate *order.Order) error {
	if aggregate.Status() != order.Started {
		return nil
	}
	for id, s := range t.orders {
		if s.Status == order.Started && !id.IsEqual(aggregate.ID()) {
			return errs.NewConflictError("order", "order "+s.Code+" is already started")
		}
	}
	return nil
}
