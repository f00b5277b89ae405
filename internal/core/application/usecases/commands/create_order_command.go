package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// NewItem describes an item the customer wants to buy abroad.
type NewItem struct {
	Title      string
	StoreName  string
	Dimensions order.Dimensions
	Weight     kernel.Weight
	Category   string
}

// CreateOrderCommand represents a customer's request to draft a new shipping order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, us, berlin, items, estimate)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, clock.NewSystem())
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	customerID           kernel.UUID
	originCountry        kernel.Country
	destination          kernel.Address
	items                []NewItem
	shipmentCostEstimate kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to draft an order.
// Item level checks run in the handler when the aggregate is built.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	originCountry kernel.Country,
	destination kernel.Address,
	items []NewItem,
	shipmentCostEstimate kernel.Money,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setOriginCountry(originCountry),
		cmd.setDestination(destination),
		cmd.setItems(items),
		cmd.setShipmentCostEstimate(shipmentCostEstimate),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID               { return c.orderID }
func (c CreateOrderCommand) CustomerID() kernel.UUID            { return c.customerID }
func (c CreateOrderCommand) OriginCountry() kernel.Country      { return c.originCountry }
func (c CreateOrderCommand) Destination() kernel.Address        { return c.destination }
func (c CreateOrderCommand) ShipmentCostEstimate() kernel.Money { return c.shipmentCostEstimate }

// Items returns a copy of the requested items.
func (c CreateOrderCommand) Items() []NewItem {
	return append([]NewItem(nil), c.items...)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setOriginCountry(country kernel.Country) error {
	if err := country.Validate(); err != nil {
		return err
	}

	c.originCountry = country
	return nil
}

func (c *CreateOrderCommand) setDestination(destination kernel.Address) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}

func (c *CreateOrderCommand) setItems(items []NewItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = append([]NewItem(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setShipmentCostEstimate(estimate kernel.Money) error {
	if err := estimate.Validate(); err != nil {
		return err
	}

	c.shipmentCostEstimate = estimate
	return nil
}
