package commands

import (
	"context"
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/payment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// PayShipmentResult is the checkout session for the shipment fee.
type PayShipmentResult struct {
	CheckoutSessionID string
	CheckoutURL       string
}

// PayShipmentCommandHandler opens a checkout session for the final shipment cost.
// The session metadata carries feeType "shipment" and the order id.
type PayShipmentCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

// NewPayShipmentCommandHandler creates the handler.
func NewPayShipmentCommandHandler(uowFactory OrderUoWFactory, gateway ports.PaymentGateway) PayShipmentCommandHandler {
	return PayShipmentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle checks that the order is Finalized, unpaid and owned by the customer, then
// calls the gateway. The order row is released before the gateway is called.
func (h *PayShipmentCommandHandler) Handle(ctx context.Context, cmd PayShipmentCommand) (PayShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return PayShipmentResult{}, err
	}

	request, err := h.checkoutRequest(ctx, cmd)
	if err != nil {
		return PayShipmentResult{}, err
	}

	session, err := h.gateway.CreateCheckoutSession(ctx, request)
	if err != nil {
		return PayShipmentResult{}, fmt.Errorf("create checkout session: %w", err)
	}

	return PayShipmentResult{
		CheckoutSessionID: session.ID,
		CheckoutURL:       session.URL,
	}, nil
}

func (h *PayShipmentCommandHandler) checkoutRequest(ctx context.Context, cmd PayShipmentCommand) (payment.CheckoutRequest, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return payment.CheckoutRequest{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return payment.CheckoutRequest{}, fmt.Errorf("%w: %w", ErrOrderNotFound, err)
		}
		return payment.CheckoutRequest{}, err
	}

	if err = o.ValidatePayShipment(cmd.CustomerID()); err != nil {
		return payment.CheckoutRequest{}, err
	}

	return payment.CheckoutRequest{
		Amount:      *o.FinalShipmentCost(),
		Description: fmt.Sprintf("Shipment for order %s", o.ID()),
		Correlation: payment.NewShipmentCorrelation(o.ID()),
	}, nil
}
