// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Orders are stored in "orders" with their items in "order_items"; items keep their
// position so the aggregate is restored in the order the customer listed them.
package orderrepo

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                  uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	OriginCountry       string              `gorm:"type:char(2);not null"`
	Destination         AddressDTO          `gorm:"embedded;embeddedPrefix:destination_"`
	EstimateAmount      decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	EstimateCurrency    string              `gorm:"type:char(3);not null"`
	Status              int                 `gorm:"type:smallint;not null;index"`
	HostID              *uuid.UUID          `gorm:"type:uuid;index"`
	TotalWeightKg       decimal.NullDecimal `gorm:"type:numeric(10,3)"`
	FinalCostAmount     decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	FinalCostCurrency   *string             `gorm:"type:char(3)"`
	CalculatorResultURL *string             `gorm:"type:text"`
	ShipmentFeePaidAt   *time.Time
	Items               []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the embedded destination address.
type AddressDTO struct {
	Street     string `gorm:"type:varchar(255);not null"`
	City       string `gorm:"type:varchar(255);not null"`
	PostalCode string `gorm:"type:varchar(32)"`
	Country    string `gorm:"type:char(2);not null"`
}

// OrderItemDTO represents one item of an order.
type OrderItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position     int             `gorm:"type:int;not null"`
	Title        string          `gorm:"type:varchar(255);not null"`
	StoreName    string          `gorm:"type:varchar(255)"`
	Length       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Width        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Height       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	WeightKg     decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	Category     string          `gorm:"type:varchar(64)"`
	ReceivedDate *time.Time
	Photos       pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		dims := item.Dimensions()
		items = append(items, OrderItemDTO{
			ID:           item.ID().Bytes(),
			OrderID:      orderID,
			Position:     i,
			Title:        item.Title(),
			StoreName:    item.StoreName(),
			Length:       dims.Length,
			Width:        dims.Width,
			Height:       dims.Height,
			WeightKg:     item.Weight().Kilograms(),
			Category:     item.Category(),
			ReceivedDate: item.ReceivedDate(),
			Photos:       pq.StringArray(item.Photos()),
		})
	}

	dto := OrderDTO{
		ID:            orderID,
		CustomerID:    o.CustomerID().Bytes(),
		OriginCountry: o.OriginCountry().Code(),
		Destination: AddressDTO{
			Street:     o.Destination().Street(),
			City:       o.Destination().City(),
			PostalCode: o.Destination().PostalCode(),
			Country:    o.Destination().Country().Code(),
		},
		EstimateAmount:      o.ShipmentCostEstimate().Amount(),
		EstimateCurrency:    o.ShipmentCostEstimate().Currency(),
		Status:              int(o.Status()),
		CalculatorResultURL: o.CalculatorResultURL(),
		ShipmentFeePaidAt:   o.ShipmentFeePaidAt(),
		Items:               items,
	}

	if id := o.Host(); id != nil {
		raw := id.Bytes()
		dto.HostID = &raw
	}
	if w := o.TotalWeight(); w != nil {
		dto.TotalWeightKg = decimal.NewNullDecimal(w.Kilograms())
	}
	if cost := o.FinalShipmentCost(); cost != nil {
		currency := cost.Currency()
		dto.FinalCostAmount = decimal.NewNullDecimal(cost.Amount())
		dto.FinalCostCurrency = &currency
	}

	return dto
}

// toDomain rebuilds the aggregate through RestoreOrder. Items must already be sorted
// by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	origin, err := kernel.NewCountry(dto.OriginCountry)
	if err != nil {
		return nil, err
	}

	destCountry, err := kernel.NewCountry(dto.Destination.Country)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewAddress(dto.Destination.Street, dto.Destination.City, dto.Destination.PostalCode, destCountry)
	if err != nil {
		return nil, err
	}

	estimate, err := kernel.NewMoney(dto.EstimateAmount, dto.EstimateCurrency)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var hostID *kernel.UUID
	if dto.HostID != nil {
		hID, hostErr := kernel.UUIDFromGoogle(*dto.HostID)
		if hostErr != nil {
			return nil, hostErr
		}
		hostID = &hID
	}

	var totalWeight *kernel.Weight
	if dto.TotalWeightKg.Valid {
		w, weightErr := kernel.NewWeight(dto.TotalWeightKg.Decimal)
		if weightErr != nil {
			return nil, weightErr
		}
		totalWeight = &w
	}

	var finalCost *kernel.Money
	if dto.FinalCostAmount.Valid {
		if dto.FinalCostCurrency == nil {
			return nil, errors.New("final cost currency is missing")
		}
		cost, costErr := kernel.NewMoney(dto.FinalCostAmount.Decimal, *dto.FinalCostCurrency)
		if costErr != nil {
			return nil, costErr
		}
		finalCost = &cost
	}

	return order.RestoreOrder(
		id,
		customerID,
		origin,
		destination,
		items,
		estimate,
		order.Status(dto.Status),
		hostID,
		totalWeight,
		finalCost,
		dto.CalculatorResultURL,
		dto.ShipmentFeePaidAt,
	)
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.WeightKg)
	if err != nil {
		return nil, err
	}

	dims := order.Dimensions{Length: dto.Length, Width: dto.Width, Height: dto.Height}

	return order.RestoreItem(id, dto.Title, dto.StoreName, dims, weight, dto.Category, dto.ReceivedDate, dto.Photos)
}
