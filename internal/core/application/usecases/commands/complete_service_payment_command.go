package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrCompleteServicePaymentCommandIsNotConstructed = errors.New(
	"CompleteServicePaymentCommand must be created via NewCompleteServicePaymentCommand constructor",
)

// CompleteServicePaymentCommand reports that the service fee for a match was paid.
type CompleteServicePaymentCommand struct { //nolint:recvcheck //using for validation
	matchID           kernel.UUID
	checkoutSessionID string

	guard guard.ConstructorGuard
}

// NewCompleteServicePaymentCommand creates a completion for the given match id.
func NewCompleteServicePaymentCommand(matchID kernel.UUID) (CompleteServicePaymentCommand, error) {
	if err := matchID.Validate(); err != nil {
		return CompleteServicePaymentCommand{}, err
	}

	return CompleteServicePaymentCommand{
		matchID: matchID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteServicePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCompleteServicePaymentCommandIsNotConstructed)
}

// MatchID returns the match echoed back by the payment gateway.
func (c CompleteServicePaymentCommand) MatchID() kernel.UUID {
	return c.matchID
}

// WithCheckoutSessionID returns a copy carrying the gateway session id.
func (c CompleteServicePaymentCommand) WithCheckoutSessionID(id string) CompleteServicePaymentCommand {
	c.checkoutSessionID = id
	return c
}

func (c CompleteServicePaymentCommand) CheckoutSessionID() string {
	return c.checkoutSessionID
}
