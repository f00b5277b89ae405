// Package postgres provides the GORM-based Unit of Work used by command handlers.
//
// A unit of work owns at most one database transaction. Repositories obtained from it
// run inside that transaction once Begin has been called and on the base connection
// otherwise.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	m, err := uow.MatchRepository().Consume(ctx, matchID)
//	if err != nil {
//	    return err
//	}
//	o, err := uow.OrderRepository().Get(ctx, m.OrderID())
//	// ... confirm the order, link the host
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction, which the
// deferred call ignores.
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines must use separate UnitOfWork instances
//   - OrderRepository().Get locks the order row FOR UPDATE
//   - HostRepository().GetAvailableInCountry locks candidate hosts FOR SHARE
package postgres

import (
	"context"

	"shipping/internal/adapters/out/postgres/hostrepo"
	"shipping/internal/adapters/out/postgres/linkagerepo"
	"shipping/internal/adapters/out/postgres/matchrepo"
	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the aggregates
// written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin twice keeps the first transaction.
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

// Commit finalizes the transaction and records the written aggregate ids on the
// active span. Returns gorm.ErrInvalidTransaction when none is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		ids := uow.TrackedAggregateIDs()
		values := make([]string, 0, len(ids))
		for _, id := range ids {
			values = append(values, id.String())
		}
		span.SetAttributes(attribute.StringSlice("uow.aggregate_ids", values))
	}
	return nil
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction when none is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides order persistence within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// HostRepository provides host persistence within the unit of work.
func (uow *GormUnitOfWork) HostRepository() ports.HostRepository {
	return hostrepo.NewGormHostRepository(uow.conn(), uow)
}

// MatchRepository provides the match ledger within the unit of work.
func (uow *GormUnitOfWork) MatchRepository() ports.MatchRepository {
	return matchrepo.NewGormMatchRepository(uow.conn())
}

// LinkageRepository provides the customer and host order lists within the unit of work.
func (uow *GormUnitOfWork) LinkageRepository() ports.LinkageRepository {
	return linkagerepo.NewGormLinkageRepository(uow.conn())
}

// TrackAggregate registers an aggregate written during this unit of work.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregateIDs returns the ids of the aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedAggregateIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		ids = append(ids, tracked.ID)
	}
	return ids
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
