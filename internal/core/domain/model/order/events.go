package order

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
)

// EventName identifies an advisory order notification.
type EventName string

const (
	EventCreated                     EventName = "order.created"
	EventRejectedServiceAvailability EventName = "order.rejected.service_availability"
	EventRejectedHostAvailability    EventName = "order.rejected.host_availability"
	EventAwaitingPayment             EventName = "order.awaiting_payment"
	EventConfirmed                   EventName = "order.confirmed"
	EventFinalized                   EventName = "order.finalized"
	EventShipmentPaid                EventName = "order.shipment_paid"
)

// Event is a fire-and-forget notification about an order. Consumers get no delivery
// or ordering guarantee; the attributes are free-form strings.
type Event struct {
	Name       EventName
	OrderID    kernel.UUID
	OccurredAt time.Time
	Attributes map[string]string
}

func newEvent(name EventName, orderID kernel.UUID, at time.Time, attrs map[string]string) Event {
	return Event{
		Name:       name,
		OrderID:    orderID,
		OccurredAt: at.UTC(),
		Attributes: attrs,
	}
}

func NewCreatedEvent(o *Order, at time.Time) Event {
	return newEvent(EventCreated, o.ID(), at, map[string]string{
		"customerId": o.CustomerID().String(),
	})
}

func NewRejectedServiceAvailabilityEvent(o *Order, at time.Time) Event {
	return newEvent(EventRejectedServiceAvailability, o.ID(), at, map[string]string{
		"originCountry":      o.OriginCountry().Code(),
		"destinationCountry": o.Destination().Country().Code(),
	})
}

func NewRejectedHostAvailabilityEvent(o *Order, at time.Time) Event {
	return newEvent(EventRejectedHostAvailability, o.ID(), at, map[string]string{
		"originCountry": o.OriginCountry().Code(),
	})
}

func NewAwaitingPaymentEvent(o *Order, hostID, matchID kernel.UUID, checkoutSessionID string, at time.Time) Event {
	return newEvent(EventAwaitingPayment, o.ID(), at, map[string]string{
		"hostId":            hostID.String(),
		"matchId":           matchID.String(),
		"checkoutSessionId": checkoutSessionID,
	})
}

func NewConfirmedEvent(o *Order, at time.Time) Event {
	attrs := map[string]string{}
	if host := o.Host(); host != nil {
		attrs["hostId"] = host.String()
	}
	return newEvent(EventConfirmed, o.ID(), at, attrs)
}

func NewFinalizedEvent(o *Order, at time.Time) Event {
	attrs := map[string]string{}
	if cost := o.FinalShipmentCost(); cost != nil {
		attrs["finalShipmentCost"] = cost.String()
	}
	if weight := o.TotalWeight(); weight != nil {
		attrs["totalWeight"] = weight.String()
	}
	return newEvent(EventFinalized, o.ID(), at, attrs)
}

func NewShipmentPaidEvent(o *Order, at time.Time) Event {
	return newEvent(EventShipmentPaid, o.ID(), at, nil)
}
