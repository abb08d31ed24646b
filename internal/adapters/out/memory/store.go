// Package memory is an in-process implementation of the persistence ports. Units
// of work are serialized: Begin takes the store for the whole transaction, the
// repositories work on a private copy and Commit publishes it.
package memory

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/cleaning"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/pause"
	"production/internal/core/ports"
)

var ErrNoActiveTransaction = errors.New("no active transaction")

type pauseRow struct {
	ID                   kernel.UUID
	OrderID              kernel.UUID
	Type                 pause.Type
	CountsTowardDowntime bool
	Comment              string
	StartedAt            time.Time
	EndedAt              *time.Time
	DurationMinutes      *int
}

type tables struct {
	orders    map[kernel.UUID]order.State
	pauses    map[kernel.UUID]pauseRow
	cleanings map[kernel.UUID]cleaning.State
}

func (t tables) clone() tables {
	c := tables{
		orders:    make(map[kernel.UUID]order.State, len(t.orders)),
		pauses:    make(map[kernel.UUID]pauseRow, len(t.pauses)),
		cleanings: make(map[kernel.UUID]cleaning.State, len(t.cleanings)),
	}
	for k, v := range t.orders {
		c.orders[k] = v
	}
	for k, v := range t.pauses {
		c.pauses[k] = v
	}
	for k, v := range t.cleanings {
		c.cleanings[k] = v
	}
	return c
}

// Store holds the committed data. The zero value is not usable, use NewStore.
type Store struct {
	sem       chan struct{}
	committed tables
}

func NewStore() *Store {
	return &Store{
		sem: make(chan struct{}, 1),
		committed: tables{
			orders:    make(map[kernel.UUID]order.State),
			pauses:    make(map[kernel.UUID]pauseRow),
			cleanings: make(map[kernel.UUID]cleaning.State),
		},
	}
}

// UnitOfWork creates a new unit of work over the store.
func (s *Store) UnitOfWork() *UnitOfWork {
	return &UnitOfWork{store: s}
}

// UnitOfWork implements ports.UnitOfWork.
type UnitOfWork struct {
	store *Store
	tx    *tables
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// Begin waits until no other unit of work holds the store or ctx is done.
// Calling Begin twice is a no-op.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil
	}

	select {
	case u.store.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	tx := u.store.committed.clone()
	u.tx = &tx
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return ErrNoActiveTransaction
	}

	u.store.committed = *u.tx
	u.release()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return ErrNoActiveTransaction
	}

	u.release()
	return nil
}

func (u *UnitOfWork) release() {
	u.tx = nil
	<-u.store.sem
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: u}
}

func (u *UnitOfWork) PauseRepository() ports.PauseRepository {
	return &PauseRepository{uow: u}
}

func (u *UnitOfWork) CleaningRepository() ports.CleaningRepository {
	return &CleaningRepository{uow: u}
}

func (u *UnitOfWork) tables() (*tables, error) {
	if u.tx == nil {
		return nil, ErrNoActiveTransaction
	}
	return u.tx, nil
}
