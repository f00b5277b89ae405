package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Dimensions are the parcel measurements of an item in centimetres.
type Dimensions struct {
	Length decimal.Decimal
	Width  decimal.Decimal
	Height decimal.Decimal
}

// Validate requires every side to be strictly positive.
func (d Dimensions) Validate() error {
	return errors.Join(
		validateSide("length", d.Length),
		validateSide("width", d.Width),
		validateSide("height", d.Height),
	)
}

func validateSide(name string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is not greater than 0", v))
	}
	return nil
}

// Item is an entity owned by exactly one Order; its id is unique within the order.
//
// An item is complete once the host has recorded a receipt date and at least one
// photo reference. Only complete items let the order reach Finalized.
type Item struct {
	id           kernel.UUID
	title        string
	storeName    string
	dimensions   Dimensions
	weight       kernel.Weight
	category     string
	receivedDate *time.Time
	photos       []string
}

// NewItem creates an item that has not been received yet.
func NewItem(
	id kernel.UUID,
	title string,
	storeName string,
	dimensions Dimensions,
	weight kernel.Weight,
	category string,
) (*Item, error) {
	item := &Item{
		storeName: strings.TrimSpace(storeName),
		category:  strings.TrimSpace(category),
	}

	if err := errors.Join(
		id.Validate(),
		item.setTitle(title),
		dimensions.Validate(),
		weight.Validate(),
	); err != nil {
		return nil, err
	}
	item.id = id
	item.dimensions = dimensions
	item.weight = weight

	return item, nil
}

// RestoreItem rebuilds an item from persistence, including its receipt state.
func RestoreItem(
	id kernel.UUID,
	title string,
	storeName string,
	dimensions Dimensions,
	weight kernel.Weight,
	category string,
	receivedDate *time.Time,
	photos []string,
) (*Item, error) {
	item, err := NewItem(id, title, storeName, dimensions, weight, category)
	if err != nil {
		return nil, err
	}
	item.receivedDate = receivedDate
	item.photos = append([]string(nil), photos...)
	return item, nil
}

// ID returns the item id, unique within its order.
func (i *Item) ID() kernel.UUID { return i.id }

// Title returns the trimmed, non-empty item title.
func (i *Item) Title() string { return i.title }

// StoreName returns the store the item was bought from; may be empty.
func (i *Item) StoreName() string { return i.storeName }

// Dimensions returns the parcel measurements in centimetres.
func (i *Item) Dimensions() Dimensions { return i.dimensions }

// Weight returns the declared parcel weight.
func (i *Item) Weight() kernel.Weight { return i.weight }

// Category returns the free-form item category; may be empty.
func (i *Item) Category() string { return i.category }

// ReceivedDate returns when the host received the item, or nil before receipt.
func (i *Item) ReceivedDate() *time.Time { return i.receivedDate }

// Photos returns a copy of the ordered photo references.
func (i *Item) Photos() []string {
	return append([]string(nil), i.photos...)
}

// IsComplete reports whether a receipt date is set and at least one photo exists.
func (i *Item) IsComplete() bool {
	return i.receivedDate != nil && len(i.photos) > 0
}

// recordReceipt sets the receipt date and appends photo references, skipping blanks.
func (i *Item) recordReceipt(receivedAt time.Time, photos []string) error {
	if receivedAt.IsZero() {
		return errs.NewValueIsRequiredError("receivedDate")
	}

	at := receivedAt.UTC()
	i.receivedDate = &at
	for _, p := range photos {
		if p = strings.TrimSpace(p); p != "" {
			i.photos = append(i.photos, p)
		}
	}
	return nil
}

func (i *Item) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	i.title = title
	return nil
}
