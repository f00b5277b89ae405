package commands

import (
	"errors"

	"shipping/internal/core/domain/model/payment"
	"shipping/internal/pkg/guard"
)

var ErrDispatchPaymentWebhookCommandIsNotConstructed = errors.New(
	"DispatchPaymentWebhookCommand must be created via NewDispatchPaymentWebhookCommand constructor",
)

// DispatchPaymentWebhookCommand is a verified payment completion with its decoded
// correlation metadata.
type DispatchPaymentWebhookCommand struct { //nolint:recvcheck //using for validation
	correlation       payment.Correlation
	checkoutSessionID string

	guard guard.ConstructorGuard
}

// NewDispatchPaymentWebhookCommand decodes the metadata echoed by the gateway.
// Returns payment.ErrUnrecognizedWebhookPayload when it cannot be routed.
func NewDispatchPaymentWebhookCommand(metadata map[string]string) (DispatchPaymentWebhookCommand, error) {
	correlation, err := payment.ParseCorrelation(metadata)
	if err != nil {
		return DispatchPaymentWebhookCommand{}, err
	}

	return DispatchPaymentWebhookCommand{
		correlation: correlation,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchPaymentWebhookCommand) Validate() error {
	return c.guard.Validate(ErrDispatchPaymentWebhookCommandIsNotConstructed)
}

// Correlation returns the decoded metadata.
func (c DispatchPaymentWebhookCommand) Correlation() payment.Correlation {
	return c.correlation
}

// WithCheckoutSessionID returns a copy carrying the gateway session id, which is
// only used to reconcile payments that arrive without a live match.
func (c DispatchPaymentWebhookCommand) WithCheckoutSessionID(id string) DispatchPaymentWebhookCommand {
	c.checkoutSessionID = id
	return c
}

// CheckoutSessionID returns the gateway session id, if known.
func (c DispatchPaymentWebhookCommand) CheckoutSessionID() string {
	return c.checkoutSessionID
}
