package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrCompleteShipmentPaymentCommandIsNotConstructed = errors.New(
	"CompleteShipmentPaymentCommand must be created via NewCompleteShipmentPaymentCommand constructor",
)

// CompleteShipmentPaymentCommand reports that the shipment fee for an order was paid.
type CompleteShipmentPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteShipmentPaymentCommand creates a completion for the given order id.
func NewCompleteShipmentPaymentCommand(orderID kernel.UUID) (CompleteShipmentPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompleteShipmentPaymentCommand{}, err
	}

	return CompleteShipmentPaymentCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteShipmentPaymentCommand) Validate() error {
	return c.guard.Validate(ErrCompleteShipmentPaymentCommandIsNotConstructed)
}

// OrderID returns the order echoed back by the payment gateway.
func (c CompleteShipmentPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}
