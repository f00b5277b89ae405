// Package eventrepo publishes advisory order events to the "order_events" table.
//
// Events are written on the base connection, outside any business transaction, and
// write failures are only logged: order events are notifications, not state.
package eventrepo

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderEventDTO is one published event.
type OrderEventDTO struct {
	ID         uuid.UUID                             `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID                             `gorm:"type:uuid;not null;index"`
	Name       string                                `gorm:"type:varchar(64);not null;index"`
	OccurredAt time.Time                             `gorm:"not null"`
	Attributes datatypes.JSONType[map[string]string] `gorm:"type:jsonb"`
}

// TableName specifies the database table name for order events.
func (OrderEventDTO) TableName() string {
	return "order_events"
}

// GormEventPublisher implements ports.EventPublisher.
type GormEventPublisher struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormEventPublisher creates a publisher writing through db.
func NewGormEventPublisher(db *gorm.DB, logger *slog.Logger) *GormEventPublisher {
	return &GormEventPublisher{
		db:     db,
		logger: logger.With("component", "order_event_publisher"),
	}
}

// Publish stores the event. Errors are logged and swallowed.
func (p *GormEventPublisher) Publish(ctx context.Context, event order.Event) {
	attrs := event.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}

	dto := OrderEventDTO{
		ID:         kernel.NewUUID().Bytes(),
		OrderID:    event.OrderID.Bytes(),
		Name:       string(event.Name),
		OccurredAt: event.OccurredAt,
		Attributes: datatypes.NewJSONType(attrs),
	}

	if err := p.db.WithContext(context.WithoutCancel(ctx)).Create(&dto).Error; err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish order event",
			"event", event.Name,
			"order_id", event.OrderID.String(),
			"error", err,
		)
		return
	}

	p.logger.DebugContext(ctx, "Order event published", "event", event.Name, "order_id", event.OrderID.String())
}

// ListByOrder returns the events of an order, oldest first.
func (p *GormEventPublisher) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.Event, error) {
	var dtos []OrderEventDTO
	if err := p.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at ASC, id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]order.Event, 0, len(dtos))
	for _, dto := range dtos {
		events = append(events, order.Event{
			Name:       order.EventName(dto.Name),
			OrderID:    orderID,
			OccurredAt: dto.OccurredAt.UTC(),
			Attributes: dto.Attributes.Data(),
		})
	}
	return events, nil
}
