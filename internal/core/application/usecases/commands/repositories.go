// Package commands contains the operations that change production state.
// Every handler follows the same shape: validate the command, open a unit of
// work, load aggregates, apply the domain operation, persist, commit and only
// then publish a notification.
package commands

import (
	"context"

	"production/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PauseRepoFactory provides access to the pause repository within a transaction.
	PauseRepoFactory interface {
		PauseRepository() ports.PauseRepository
	}

	// CleaningRepoFactory provides access to the cleaning repository within a transaction.
	CleaningRepoFactory interface {
		CleaningRepository() ports.CleaningRepository
	}

	// OrderUoW manages transactions for operations that touch only the order row:
	// creation, detail edits and counter adjustments.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CleaningUoW manages transactions for cleaning orders, which never touch
	// production orders.
	CleaningUoW interface {
		TxManager
		CleaningRepoFactory
	}

	// CleaningUoWFactory creates new cleaning unit of work instances.
	CleaningUoWFactory interface {
		Create() CleaningUoW
	}

	// UoW manages transactions across orders and their pauses.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   pauseRepo := uow.PauseRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		PauseRepoFactory
	}

	// UoWFactory creates new unit of work instances for order and pause operations.
	UoWFactory interface {
		Create() UoW
	}
)
