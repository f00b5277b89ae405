package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
)

// EventLister reads the persisted event log.
type EventLister interface {
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.Event, error)
}

type GetOrderEventsQueryHandler struct {
	events EventLister
}

func NewGetOrderEventsQueryHandler(events EventLister) GetOrderEventsQueryHandler {
	return GetOrderEventsQueryHandler{events: events}
}

// Handle returns the events oldest first. Orders without events yield an empty slice.
func (h GetOrderEventsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderEventsQuery,
) ([]GetOrderEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events, err := h.events.ListByOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	resp := make([]GetOrderEventsQueryResponse, 0, len(events))
	for _, e := range events {
		attrs := e.Attributes
		if attrs == nil {
			attrs = map[string]string{}
		}
		resp = append(resp, GetOrderEventsQueryResponse{
			Name:       string(e.Name),
			OccurredAt: e.OccurredAt,
			Attributes: attrs,
		})
	}
	return resp, nil
}
