package commands

import (
	"context"
	"fmt"

	"shipping/internal/core/domain/model/payment"
)

type (
	// ServicePaymentCompleter completes the service fee leg.
	ServicePaymentCompleter interface {
		Handle(ctx context.Context, cmd CompleteServicePaymentCommand) error
	}

	// ShipmentPaymentCompleter completes the shipment fee leg.
	ShipmentPaymentCompleter interface {
		Handle(ctx context.Context, cmd CompleteShipmentPaymentCommand) error
	}
)

// DispatchPaymentWebhookCommandHandler routes a payment completion to the handler for
// its fee type. The set of fee types is closed; anything else is rejected as
// unrecognized and must not be retried.
type DispatchPaymentWebhookCommandHandler struct {
	service  ServicePaymentCompleter
	shipment ShipmentPaymentCompleter
}

// NewDispatchPaymentWebhookCommandHandler creates the dispatcher.
func NewDispatchPaymentWebhookCommandHandler(
	service ServicePaymentCompleter,
	shipment ShipmentPaymentCompleter,
) DispatchPaymentWebhookCommandHandler {
	return DispatchPaymentWebhookCommandHandler{
		service:  service,
		shipment: shipment,
	}
}

// Handle dispatches on the fee type. Errors from the selected handler are returned
// unchanged so the caller can ask the gateway to redeliver.
func (h *DispatchPaymentWebhookCommandHandler) Handle(ctx context.Context, cmd DispatchPaymentWebhookCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	correlation := cmd.Correlation()
	switch correlation.FeeType {
	case payment.FeeTypeService:
		completion, err := NewCompleteServicePaymentCommand(correlation.MatchID)
		if err != nil {
			return fmt.Errorf("%w: %w", payment.ErrUnrecognizedWebhookPayload, err)
		}
		return h.service.Handle(ctx, completion.WithCheckoutSessionID(cmd.CheckoutSessionID()))
	case payment.FeeTypeShipment:
		completion, err := NewCompleteShipmentPaymentCommand(correlation.OrderID)
		if err != nil {
			return fmt.Errorf("%w: %w", payment.ErrUnrecognizedWebhookPayload, err)
		}
		return h.shipment.Handle(ctx, completion)
	case payment.FeeTypeUnknown:
	}

	return fmt.Errorf("%w: feeType %s", payment.ErrUnrecognizedWebhookPayload, correlation.FeeType)
}
