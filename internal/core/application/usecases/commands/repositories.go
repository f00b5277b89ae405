// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HostRepoFactory provides access to the host repository within a transaction.
	HostRepoFactory interface {
		HostRepository() ports.HostRepository
	}

	// MatchRepoFactory provides access to the match ledger within a transaction.
	MatchRepoFactory interface {
		MatchRepository() ports.MatchRepository
	}

	// LinkageRepoFactory provides access to customer and host order lists within a transaction.
	LinkageRepoFactory interface {
		LinkageRepository() ports.LinkageRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderLinkageUoW manages transactions that create an order and link it to its customer.
	OrderLinkageUoW interface {
		TxManager
		OrderRepoFactory
		LinkageRepoFactory
	}

	// OrderLinkageUoWFactory creates new order linkage unit of work instances.
	OrderLinkageUoWFactory interface {
		Create() OrderLinkageUoW
	}

	// MatchUoW manages transactions touching only the match ledger.
	MatchUoW interface {
		TxManager
		MatchRepoFactory
	}

	// MatchUoWFactory creates new match unit of work instances.
	MatchUoWFactory interface {
		Create() MatchUoW
	}

	// UoW manages transactions across orders, hosts, matches and order lists.
	// Used by the confirmation saga steps.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   m, err := uow.MatchRepository().Consume(ctx, matchID)
	//   o, err := uow.OrderRepository().Get(ctx, m.OrderID())
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		HostRepoFactory
		MatchRepoFactory
		LinkageRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
