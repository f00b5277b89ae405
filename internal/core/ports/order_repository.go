package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates together with
// their items.
type OrderRepository interface {
	// Add persists a new order aggregate and its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order and its items.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id, locking the row for the rest of the transaction.
	// Returns errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetConfirmedForHost retrieves an order only if it is Confirmed and assigned to
	// hostID. A miss returns errs.ObjectNotFoundError, which callers read as "not in
	// a finalizable state for this host".
	GetConfirmedForHost(ctx context.Context, id kernel.UUID, hostID kernel.UUID) (*order.Order, error)
}
