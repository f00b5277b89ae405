package commands

import (
	"context"
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
)

// RecordItemReceiptCommandHandler lets the assigned host mark items as received.
type RecordItemReceiptCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordItemReceiptCommandHandler creates the handler.
func NewRecordItemReceiptCommandHandler(uowFactory OrderUoWFactory) RecordItemReceiptCommandHandler {
	return RecordItemReceiptCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the receipt. Returns ErrOrderNotFound for an unknown order and
// order.ErrHostMismatch when the caller is not the order's host.
func (h *RecordItemReceiptCommandHandler) Handle(ctx context.Context, cmd RecordItemReceiptCommand) error {
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
			return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
		}
		return err
	}

	if err = o.RecordItemReceipt(cmd.HostID(), cmd.ItemID(), cmd.ReceivedAt(), cmd.Photos()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
