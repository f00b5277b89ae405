package commands

import (
	"context"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/clock"
)

// CreateOrderCommandHandler drafts a new order and links it to its customer.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, clock.NewSystem())
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// Order is now Drafted and can be confirmed by the customer
type CreateOrderCommandHandler struct {
	uowFactory OrderLinkageUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderLinkageUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle builds the order aggregate, persists it with its items and links it to the
// customer in one transaction. Emits order.created after commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items := make([]*order.Item, 0, len(cmd.Items()))
	for i, newItem := range cmd.Items() {
		item, err := order.NewItem(kernel.NewUUID(), newItem.Title, newItem.StoreName, newItem.Dimensions, newItem.Weight, newItem.Category)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.OriginCountry(),
		cmd.Destination(),
		items,
		cmd.ShipmentCostEstimate(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.LinkageRepository().LinkCustomerOrder(ctx, newOrder.CustomerID(), newOrder.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, order.NewCreatedEvent(newOrder, h.clock.Now()))
	return nil
}
