// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work wraps one business operation in a database
// transaction, hands out repositories bound to that transaction, and tracks
// the aggregates the operation touched.
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
//	if err := uow.ParcelRepository().Add(ctx, parcel); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each unit of work instance owns its own transaction state; concurrent
// operations must use separate instances.
package postgres

import (
	"context"

	"courier/internal/adapters/out/postgres/parcelrepo"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances over a shared GORM
// connection. Each created instance is isolated from the others.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork ready to begin a transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks aggregate
// changes within it. Repositories obtained from it run inside the active
// transaction, so a parcel row update and its timeline inserts commit or
// roll back together.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a database transaction.
// Calling Begin on an already started unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes
// it safe to call from a defer after a successful commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// ParcelRepository returns a parcel repository bound to the current
// transaction, or to the main connection when no transaction is active.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return parcelrepo.NewGormParcelRepository(db, uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repository implementations call it on add and update; the tracked set
// is available for post-commit processing.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
