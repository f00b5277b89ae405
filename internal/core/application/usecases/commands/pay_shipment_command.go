package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrPayShipmentCommandIsNotConstructed = errors.New(
	"PayShipmentCommand must be created via NewPayShipmentCommand constructor",
)

// PayShipmentCommand asks for a checkout session for a finalized order's shipment cost.
type PayShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPayShipmentCommand creates the command for the order's owner.
func NewPayShipmentCommand(orderID kernel.UUID, customerID kernel.UUID) (PayShipmentCommand, error) {
	if err := errors.Join(orderID.Validate(), customerID.Validate()); err != nil {
		return PayShipmentCommand{}, err
	}

	return PayShipmentCommand{
		orderID:    orderID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PayShipmentCommand) Validate() error {
	return c.guard.Validate(ErrPayShipmentCommandIsNotConstructed)
}

func (c PayShipmentCommand) OrderID() kernel.UUID    { return c.orderID }
func (c PayShipmentCommand) CustomerID() kernel.UUID { return c.customerID }
