// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and return read models shaped for the HTTP layer.
package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order together with its items.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the order read model.
type GetOrderQueryResponse struct {
	ID                   kernel.UUID
	CustomerID           kernel.UUID
	OriginCountry        string
	Destination          AddressView
	Status               string
	ShipmentCostEstimate MoneyView
	HostID               *kernel.UUID
	TotalWeightKg        *decimal.Decimal
	FinalShipmentCost    *MoneyView
	CalculatorResultURL  *string
	ShipmentFeePaidAt    *time.Time
	Items                []ItemView
}

type AddressView struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

type MoneyView struct {
	Amount   decimal.Decimal
	Currency string
}

// ItemView is one order item. ReceivedDate is nil until the host records receipt.
type ItemView struct {
	ID           kernel.UUID
	Title        string
	StoreName    string
	Length       decimal.Decimal
	Width        decimal.Decimal
	Height       decimal.Decimal
	WeightKg     decimal.Decimal
	Category     string
	ReceivedDate *time.Time
	Photos       []string
}
