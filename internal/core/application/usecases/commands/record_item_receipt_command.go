package commands

import (
	"errors"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrRecordItemReceiptCommandIsNotConstructed = errors.New(
	"RecordItemReceiptCommand must be created via NewRecordItemReceiptCommand constructor",
)

// RecordItemReceiptCommand marks an item as received by the host, with photo links.
type RecordItemReceiptCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	hostID     kernel.UUID
	itemID     kernel.UUID
	receivedAt time.Time
	photos     []string

	guard guard.ConstructorGuard
}

// NewRecordItemReceiptCommand creates the command. Blank photo links are dropped and
// at least one must remain.
func NewRecordItemReceiptCommand(
	orderID kernel.UUID,
	hostID kernel.UUID,
	itemID kernel.UUID,
	receivedAt time.Time,
	photos []string,
) (RecordItemReceiptCommand, error) {
	cleaned := make([]string, 0, len(photos))
	for _, p := range photos {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}

	var receivedErr, photosErr error
	if receivedAt.IsZero() {
		receivedErr = errs.NewValueIsRequiredError("receivedAt")
	}
	if len(cleaned) == 0 {
		photosErr = errs.NewValueIsRequiredError("photos")
	}

	if err := errors.Join(
		orderID.Validate(),
		hostID.Validate(),
		itemID.Validate(),
		receivedErr,
		photosErr,
	); err != nil {
		return RecordItemReceiptCommand{}, err
	}

	return RecordItemReceiptCommand{
		orderID:    orderID,
		hostID:     hostID,
		itemID:     itemID,
		receivedAt: receivedAt,
		photos:     cleaned,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordItemReceiptCommand) Validate() error {
	return c.guard.Validate(ErrRecordItemReceiptCommandIsNotConstructed)
}

func (c RecordItemReceiptCommand) OrderID() kernel.UUID  { return c.orderID }
func (c RecordItemReceiptCommand) HostID() kernel.UUID   { return c.hostID }
func (c RecordItemReceiptCommand) ItemID() kernel.UUID   { return c.itemID }
func (c RecordItemReceiptCommand) ReceivedAt() time.Time { return c.receivedAt }
func (c RecordItemReceiptCommand) Photos() []string      { return append([]string(nil), c.photos...) }
