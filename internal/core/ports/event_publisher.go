package ports

import (
	"context"

	"shipping/internal/core/domain/model/order"
)

// EventPublisher emits advisory order events. Publishing never fails the caller;
// implementations log their own delivery errors.
type EventPublisher interface {
	Publish(ctx context.Context, event order.Event)
}
