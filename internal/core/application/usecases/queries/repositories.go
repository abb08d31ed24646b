// Package queries contains read-only operations. Handlers open a unit of work only
// to get a consistent view and always roll it back.
package queries

import (
	"context"

	"production/internal/core/ports"
)

type (
	// ReadUoW is the part of a unit of work a query needs.
	ReadUoW interface {
		Begin(ctx context.Context) error
		Rollback(ctx context.Context) error
		OrderRepository() ports.OrderRepository
		PauseRepository() ports.PauseRepository
		CleaningRepository() ports.CleaningRepository
	}

	ReadUoWFactory interface {
		Create() ReadUoW
	}
)

// read runs fn inside a unit of work that is always rolled back.
func read(ctx context.Context, factory ReadUoWFactory, fn func(uow ReadUoW) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return fn(uow)
}
