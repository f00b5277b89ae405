// Package linkagerepo keeps the customer and host order lists.
package linkagerepo

import (
	"time"

	"github.com/google/uuid"
)

// CustomerOrderDTO links a customer to one of their orders.
type CustomerOrderDTO struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for customer order links.
func (CustomerOrderDTO) TableName() string {
	return "customer_orders"
}

// HostOrderDTO links a host to an order they confirmed.
type HostOrderDTO struct {
	HostID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for host order links.
func (HostOrderDTO) TableName() string {
	return "host_orders"
}
