package commands

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/clock"
	"shipping/internal/pkg/errs"
)

// CompleteShipmentPaymentCommandHandler records that a finalized order's shipment fee
// was paid. Unknown orders and already settled fees are successful no-ops so webhook
// redeliveries are harmless.
type CompleteShipmentPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
}

// NewCompleteShipmentPaymentCommandHandler creates the shipment fee completion handler.
func NewCompleteShipmentPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
) CompleteShipmentPaymentCommandHandler {
	return CompleteShipmentPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle marks the shipment fee as paid and emits order.shipment_paid.
func (h *CompleteShipmentPaymentCommandHandler) Handle(ctx context.Context, cmd CompleteShipmentPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if err = o.MarkShipmentFeePaid(h.clock.Now()); err != nil {
		if errors.Is(err, order.ErrShipmentFeeAlreadyPaid) {
			return nil
		}
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, order.NewShipmentPaidEvent(o, h.clock.Now()))
	return nil
}
