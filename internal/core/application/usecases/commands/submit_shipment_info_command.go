package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrSubmitShipmentInfoCommandIsNotConstructed = errors.New(
	"SubmitShipmentInfoCommand must be created via NewSubmitShipmentInfoCommand constructor",
)

// SubmitShipmentInfoCommand carries the weighed parcel and final cost a host submits
// once every item has arrived.
//
// Example:
//
//	cmd, err := NewSubmitShipmentInfoCommand(orderID, hostID, weight, cost, "https://calc.example/r/42")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	var incomplete *order.IncompleteItemsError
//	if errors.As(err, &incomplete) {
//	    // report incomplete.ItemIDs to the host
//	}
type SubmitShipmentInfoCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	hostID              kernel.UUID
	totalWeight         kernel.Weight
	shipmentCost        kernel.Money
	calculatorResultURL *string

	guard guard.ConstructorGuard
}

// NewSubmitShipmentInfoCommand creates the command. An empty calculatorResultURL
// means the host did not provide one.
func NewSubmitShipmentInfoCommand(
	orderID kernel.UUID,
	hostID kernel.UUID,
	totalWeight kernel.Weight,
	shipmentCost kernel.Money,
	calculatorResultURL string,
) (SubmitShipmentInfoCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		hostID.Validate(),
		totalWeight.Validate(),
		shipmentCost.Validate(),
	); err != nil {
		return SubmitShipmentInfoCommand{}, err
	}

	cmd := SubmitShipmentInfoCommand{
		orderID:      orderID,
		hostID:       hostID,
		totalWeight:  totalWeight,
		shipmentCost: shipmentCost,
		guard:        guard.NewConstructorGuard(),
	}
	if u := strings.TrimSpace(calculatorResultURL); u != "" {
		cmd.calculatorResultURL = &u
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitShipmentInfoCommand) Validate() error {
	return c.guard.Validate(ErrSubmitShipmentInfoCommandIsNotConstructed)
}

func (c SubmitShipmentInfoCommand) OrderID() kernel.UUID         { return c.orderID }
func (c SubmitShipmentInfoCommand) HostID() kernel.UUID          { return c.hostID }
func (c SubmitShipmentInfoCommand) TotalWeight() kernel.Weight   { return c.totalWeight }
func (c SubmitShipmentInfoCommand) ShipmentCost() kernel.Money   { return c.shipmentCost }
func (c SubmitShipmentInfoCommand) CalculatorResultURL() *string { return c.calculatorResultURL }
