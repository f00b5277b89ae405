package commands

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/match"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/payment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/clock"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/telemetry"
)

// ConfirmOrderResult is what the customer needs to pay the service fee.
type ConfirmOrderResult struct {
	MatchID           kernel.UUID
	HostID            kernel.UUID
	CheckoutSessionID string
	CheckoutURL       string
}

// ConfirmOrderCommandHandler runs the first half of the confirmation saga.
//
// The handler performs these steps:
//  1. Loads the order and rejects it unless it is Drafted
//  2. Checks route coverage, emitting order.rejected.service_availability on a miss
//  3. Selects an available host for the origin country, emitting
//     order.rejected.host_availability when there is none
//  4. Records a match and commits
//  5. Opens a service fee checkout session carrying the match id; if the gateway
//     fails the match is deleted again
//  6. Emits order.awaiting_payment
//
// The order itself stays Drafted. It moves to Confirmed only when the payment
// webhook consumes the match.
type ConfirmOrderCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.HostMatcher
	gateway    ports.PaymentGateway
	publisher  ports.EventPublisher
	clock      clock.Clock
	serviceFee kernel.Money
}

// NewConfirmOrderCommandHandler creates the confirmation handler. serviceFee is the
// amount charged per confirmation.
func NewConfirmOrderCommandHandler(
	uowFactory UoWFactory,
	matcher services.HostMatcher,
	gateway ports.PaymentGateway,
	publisher ports.EventPublisher,
	clk clock.Clock,
	serviceFee kernel.Money,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		matcher:    matcher,
		gateway:    gateway,
		publisher:  publisher,
		clock:      clk,
		serviceFee: serviceFee,
	}
}

// Handle processes the confirmation request.
//
// Returns:
//   - ErrOrderNotFound if the order does not exist
//   - order.ErrOrderAlreadyConfirmed if the order is past Drafted
//   - ErrServiceUnavailable if the route is not covered
//   - services.ErrNoHostAvailable if no host serves the origin country
//   - the gateway error if the checkout session could not be created
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (ConfirmOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmOrderResult{}, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "ConfirmOrder")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", cmd.OrderID().String()))

	result, err := h.handle(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ConfirmOrderResult{}, err
	}

	span.SetAttributes(
		attribute.String("match.id", result.MatchID.String()),
		attribute.String("host.id", result.HostID.String()),
	)
	return result, nil
}

func (h *ConfirmOrderCommandHandler) handle(ctx context.Context, cmd ConfirmOrderCommand) (ConfirmOrderResult, error) {
	m, o, err := h.recordMatch(ctx, cmd.OrderID())
	if err != nil {
		return ConfirmOrderResult{}, err
	}

	session, err := h.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		Amount:      h.serviceFee,
		Description: fmt.Sprintf("Service fee for order %s", o.ID()),
		Correlation: payment.NewServiceCorrelation(m.ID()),
	})
	if err != nil {
		err = fmt.Errorf("create checkout session: %w", err)
		if cerr := h.discardMatch(ctx, m.ID()); cerr != nil {
			err = errors.Join(err, fmt.Errorf("discard match %s: %w", m.ID(), cerr))
		}
		return ConfirmOrderResult{}, err
	}

	h.publisher.Publish(ctx, order.NewAwaitingPaymentEvent(o, m.HostID(), m.ID(), session.ID, h.clock.Now()))

	return ConfirmOrderResult{
		MatchID:           m.ID(),
		HostID:            m.HostID(),
		CheckoutSessionID: session.ID,
		CheckoutURL:       session.URL,
	}, nil
}

// recordMatch performs steps 1 to 4 inside one transaction. Candidate host rows stay
// share-locked until the match is committed.
func (h *ConfirmOrderCommandHandler) recordMatch(ctx context.Context, orderID kernel.UUID) (*match.Match, *order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil, fmt.Errorf("%w: %w", ErrOrderNotFound, err)
		}
		return nil, nil, err
	}

	if err = o.ValidateConfirm(); err != nil {
		return nil, nil, err
	}

	if !h.matcher.CheckServiceAvailability(o.OriginCountry(), o.Destination().Country()) {
		h.publisher.Publish(ctx, order.NewRejectedServiceAvailabilityEvent(o, h.clock.Now()))
		return nil, nil, fmt.Errorf("%w: %s to %s", ErrServiceUnavailable, o.OriginCountry(), o.Destination().Country())
	}

	candidates, err := uow.HostRepository().GetAvailableInCountry(ctx, o.OriginCountry())
	if err != nil {
		return nil, nil, err
	}

	selected, err := h.matcher.MatchHost(o.OriginCountry(), candidates)
	if err != nil {
		if errors.Is(err, services.ErrNoHostAvailable) {
			h.publisher.Publish(ctx, order.NewRejectedHostAvailabilityEvent(o, h.clock.Now()))
		}
		return nil, nil, err
	}

	m, err := match.NewMatch(o.ID(), selected.ID(), h.clock.Now())
	if err != nil {
		return nil, nil, err
	}

	if err = uow.MatchRepository().Record(ctx, m); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return m, o, nil
}

// discardMatch deletes a match whose checkout session could not be opened.
func (h *ConfirmOrderCommandHandler) discardMatch(ctx context.Context, matchID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.MatchRepository().Delete(ctx, matchID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
