package ports

import (
	"context"

	"shipping/internal/core/domain/model/payment"
)

// PaymentGateway creates hosted checkout sessions. The call happens outside any
// storage transaction.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, request payment.CheckoutRequest) (payment.CheckoutSession, error)
}
