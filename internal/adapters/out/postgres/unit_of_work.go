// Package postgres provides the GORM-based Unit of Work over the orders, pauses
// and cleanings tables.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.PauseRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin use the plain connection. Each UnitOfWork
// instance belongs to one goroutine.
package postgres

import (
	"context"

	"production/internal/adapters/out/postgres/cleaningrepo"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/adapters/out/postgres/pauserepo"
	"production/internal/core/ports"

	"gorm.io/gorm"
)

// Migrate creates or updates the orders, pauses and cleanings tables together
// with their partial unique indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &pauserepo.PauseDTO{}, &cleaningrepo.CleaningDTO{})
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork wraps one GORM transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the open transaction. It returns gorm.ErrInvalidTransaction
// after Commit, which lets handlers defer it unconditionally.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) PauseRepository() ports.PauseRepository {
	return pauserepo.NewGormPauseRepository(uow.conn())
}

func (uow *GormUnitOfWork) CleaningRepository() ports.CleaningRepository {
	return cleaningrepo.NewGormCleaningRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
