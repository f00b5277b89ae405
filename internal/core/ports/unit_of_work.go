// Package ports defines the contracts between the application core and its adapters.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// HostRepository returns a HostRepository bound to the current transaction.
	HostRepository() HostRepository

	// MatchRepository returns the match ledger bound to the current transaction.
	MatchRepository() MatchRepository

	// LinkageRepository returns the order list store bound to the current transaction.
	LinkageRepository() LinkageRepository
}
