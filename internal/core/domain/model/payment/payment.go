// Package payment defines the correlation contract shared with the payment gateway.
//
// A checkout session carries an opaque metadata map that the gateway echoes back
// verbatim on completion. The map always holds a "feeType" discriminator and either a
// "matchId" (service fee) or an "orderId" (shipment fee).
package payment

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
)

// ErrUnrecognizedWebhookPayload is returned for payloads that cannot be routed. It is
// final: redelivering the same payload cannot succeed.
var ErrUnrecognizedWebhookPayload = errors.New("unrecognized webhook payload")

const (
	MetadataFeeType = "feeType"
	MetadataMatchID = "matchId"
	MetadataOrderID = "orderId"
)

// FeeType discriminates the two fees collected per order.
type FeeType int

const (
	FeeTypeUnknown FeeType = iota
	FeeTypeService
	FeeTypeShipment
)

// String returns the wire value of the fee type.
func (f FeeType) String() string {
	switch f {
	case FeeTypeService:
		return "service"
	case FeeTypeShipment:
		return "shipment"
	default:
		return "unknown"
	}
}

// ParseFeeType maps a wire value to a FeeType; unknown values return FeeTypeUnknown.
func ParseFeeType(s string) FeeType {
	switch s {
	case "service":
		return FeeTypeService
	case "shipment":
		return FeeTypeShipment
	default:
		return FeeTypeUnknown
	}
}

// Correlation is the decoded metadata of a checkout session. Exactly one of MatchID
// and OrderID is set, depending on FeeType.
type Correlation struct {
	FeeType FeeType
	MatchID kernel.UUID
	OrderID kernel.UUID
}

// NewServiceCorrelation correlates the service fee with a recorded match.
func NewServiceCorrelation(matchID kernel.UUID) Correlation {
	return Correlation{FeeType: FeeTypeService, MatchID: matchID}
}

// NewShipmentCorrelation correlates the shipment fee with a finalized order.
func NewShipmentCorrelation(orderID kernel.UUID) Correlation {
	return Correlation{FeeType: FeeTypeShipment, OrderID: orderID}
}

// Metadata encodes the correlation for the gateway.
func (c Correlation) Metadata() map[string]string {
	md := map[string]string{MetadataFeeType: c.FeeType.String()}
	switch c.FeeType {
	case FeeTypeService:
		md[MetadataMatchID] = c.MatchID.String()
	case FeeTypeShipment:
		md[MetadataOrderID] = c.OrderID.String()
	case FeeTypeUnknown:
	}
	return md
}

// ParseCorrelation decodes echoed metadata. Any unknown fee type or missing or
// malformed id yields ErrUnrecognizedWebhookPayload.
func ParseCorrelation(metadata map[string]string) (Correlation, error) {
	feeType := ParseFeeType(metadata[MetadataFeeType])

	switch feeType {
	case FeeTypeService:
		id, err := kernel.UUIDFromString(metadata[MetadataMatchID])
		if err != nil {
			return Correlation{}, fmt.Errorf("%w: matchId: %w", ErrUnrecognizedWebhookPayload, err)
		}
		return NewServiceCorrelation(id), nil
	case FeeTypeShipment:
		id, err := kernel.UUIDFromString(metadata[MetadataOrderID])
		if err != nil {
			return Correlation{}, fmt.Errorf("%w: orderId: %w", ErrUnrecognizedWebhookPayload, err)
		}
		return NewShipmentCorrelation(id), nil
	case FeeTypeUnknown:
	}

	return Correlation{}, fmt.Errorf("%w: feeType %q", ErrUnrecognizedWebhookPayload, metadata[MetadataFeeType])
}

// CheckoutRequest asks the gateway for a hosted checkout page.
type CheckoutRequest struct {
	Amount      kernel.Money
	Description string
	Correlation Correlation
}

// CheckoutSession is what the gateway returns for a CheckoutRequest.
type CheckoutSession struct {
	ID  string
	URL string
}
