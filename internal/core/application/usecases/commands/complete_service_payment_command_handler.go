package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"shipping/internal/core/domain/model/match"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/clock"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/telemetry"
)

// CompleteServicePaymentCommandHandler finishes the confirmation saga once the service
// fee is paid. In one transaction it consumes the match, confirms the order with the
// matched host and adds the order to the host's list.
//
// Processing is idempotent. A match that is already consumed, expired or unknown
// makes the call a successful no-op, so webhook redeliveries are harmless. The
// no-op is logged with the checkout session id for reconciliation.
type CompleteServicePaymentCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

// NewCompleteServicePaymentCommandHandler creates the service fee completion handler.
func NewCompleteServicePaymentCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) CompleteServicePaymentCommandHandler {
	return CompleteServicePaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "complete_service_payment"),
	}
}

// Handle consumes the match and confirms its order.
//
// A paid match whose order was already confirmed through another match is consumed
// without changing the order. Any other failure rolls back, leaving the match in the
// ledger so the webhook can be retried.
func (h *CompleteServicePaymentCommandHandler) Handle(ctx context.Context, cmd CompleteServicePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "CompleteServicePayment")
	defer span.End()
	span.SetAttributes(attribute.String("match.id", cmd.MatchID().String()))

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	m, err := uow.MatchRepository().Consume(ctx, cmd.MatchID())
	if err != nil {
		if errors.Is(err, match.ErrMatchNotFound) {
			span.SetAttributes(attribute.Bool("match.missing", true))
			h.logger.WarnContext(ctx, "Service payment without a live match",
				"match_id", cmd.MatchID().String(), "checkout_session_id", cmd.CheckoutSessionID())
			return nil
		}
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, m.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return fmt.Errorf("%w: %w", ErrOrderNotFound, err)
		}
		return err
	}

	if err = o.Confirm(m.HostID()); err != nil {
		if errors.Is(err, order.ErrOrderAlreadyConfirmed) {
			span.SetAttributes(attribute.Bool("order.already_confirmed", true))
			return uow.Commit(ctx)
		}
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.LinkageRepository().LinkHostOrder(ctx, m.HostID(), o.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, order.NewConfirmedEvent(o, h.clock.Now()))
	return nil
}
