package api

import (
	"time"

	"github.com/google/uuid"
)

type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country"`
}

type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

type NewOrderItem struct {
	Title      string     `json:"title"`
	StoreName  string     `json:"storeName,omitempty"`
	Dimensions Dimensions `json:"dimensions"`
	WeightKg   string     `json:"weightKg"`
	Category   string     `json:"category,omitempty"`
}

type NewOrder struct {
	OriginCountry        string         `json:"originCountry"`
	Destination          Address        `json:"destination"`
	Items                []NewOrderItem `json:"items"`
	ShipmentCostEstimate Money          `json:"shipmentCostEstimate"`
}

type CreatedOrder struct {
	Id uuid.UUID `json:"id"`
}

type OrderItem struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	StoreName    string     `json:"storeName,omitempty"`
	Dimensions   Dimensions `json:"dimensions"`
	WeightKg     string     `json:"weightKg"`
	Category     string     `json:"category,omitempty"`
	ReceivedDate *time.Time `json:"receivedDate,omitempty"`
	Photos       []string   `json:"photos"`
}

type Order struct {
	Id                   uuid.UUID   `json:"id"`
	CustomerId           uuid.UUID   `json:"customerId"`
	OriginCountry        string      `json:"originCountry"`
	Destination          Address     `json:"destination"`
	Status               string      `json:"status"`
	ShipmentCostEstimate Money       `json:"shipmentCostEstimate"`
	HostId               *uuid.UUID  `json:"hostId,omitempty"`
	TotalWeightKg        *string     `json:"totalWeightKg,omitempty"`
	FinalShipmentCost    *Money      `json:"finalShipmentCost,omitempty"`
	CalculatorResultUrl  *string     `json:"calculatorResultUrl,omitempty"`
	ShipmentFeePaidAt    *time.Time  `json:"shipmentFeePaidAt,omitempty"`
	Items                []OrderItem `json:"items"`
}

type CheckoutSession struct {
	CheckoutSessionId string     `json:"checkoutSessionId"`
	CheckoutUrl       string     `json:"checkoutUrl,omitempty"`
	MatchId           *uuid.UUID `json:"matchId,omitempty"`
	HostId            *uuid.UUID `json:"hostId,omitempty"`
}

type ItemReceipt struct {
	ReceivedAt time.Time `json:"receivedAt"`
	Photos     []string  `json:"photos"`
}

type ShipmentInfo struct {
	TotalWeightKg       string  `json:"totalWeightKg"`
	ShipmentCost        Money   `json:"shipmentCost"`
	CalculatorResultUrl *string `json:"calculatorResultUrl,omitempty"`
}

type HostOrder struct {
	OrderId  uuid.UUID `json:"orderId"`
	Status   string    `json:"status,omitempty"`
	LinkedAt time.Time `json:"linkedAt"`
}

type OrderEvent struct {
	Name       string            `json:"name"`
	OccurredAt time.Time         `json:"occurredAt"`
	Attributes map[string]string `json:"attributes"`
}

type Match struct {
	Id        uuid.UUID `json:"id"`
	OrderId   uuid.UUID `json:"orderId"`
	HostId    uuid.UUID `json:"hostId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Error is the body of every non-2xx response. ItemIds lists the blocking items
// when finalization is refused.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	ItemIds []uuid.UUID `json:"itemIds,omitempty"`
}
