package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
)

// LinkageRepository maintains the customer and host order lists. Linking is
// idempotent: linking the same pair twice leaves one entry.
type LinkageRepository interface {
	LinkCustomerOrder(ctx context.Context, customerID kernel.UUID, orderID kernel.UUID) error
	UnlinkCustomerOrder(ctx context.Context, customerID kernel.UUID, orderID kernel.UUID) error
	LinkHostOrder(ctx context.Context, hostID kernel.UUID, orderID kernel.UUID) error
	UnlinkHostOrder(ctx context.Context, hostID kernel.UUID, orderID kernel.UUID) error

	// HostOrders returns the host's order ids, oldest link first.
	HostOrders(ctx context.Context, hostID kernel.UUID) ([]kernel.UUID, error)

	// CustomerOrders returns the customer's order ids, oldest link first.
	CustomerOrders(ctx context.Context, customerID kernel.UUID) ([]kernel.UUID, error)
}
