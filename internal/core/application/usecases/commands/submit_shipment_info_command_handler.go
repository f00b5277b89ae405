package commands

import (
	"context"
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/clock"
	"shipping/internal/pkg/errs"
)

// SubmitShipmentInfoCommandHandler finalizes an order on behalf of its host.
//
// The order is loaded only if it is Confirmed and assigned to the calling host; any
// other order reads as not found. Finalization is refused with
// *order.IncompleteItemsError while an item lacks a receipt date or photos, and the
// order is then left untouched.
type SubmitShipmentInfoCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
}

// NewSubmitShipmentInfoCommandHandler creates the finalizer.
func NewSubmitShipmentInfoCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
) SubmitShipmentInfoCommandHandler {
	return SubmitShipmentInfoCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
	}
}

// Handle records weight and final cost and moves the order to Finalized.
func (h *SubmitShipmentInfoCommandHandler) Handle(ctx context.Context, cmd SubmitShipmentInfoCommand) error {
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
	o, err := orderRepo.GetConfirmedForHost(ctx, cmd.OrderID(), cmd.HostID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
		}
		return err
	}

	if err = o.Finalize(cmd.HostID(), cmd.TotalWeight(), cmd.ShipmentCost(), cmd.CalculatorResultURL()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, order.NewFinalizedEvent(o, h.clock.Now()))
	return nil
}
