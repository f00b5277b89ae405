package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrIncompleteItems is the sentinel behind IncompleteItemsError.
	ErrIncompleteItems = errors.New("order has incomplete items")

	// ErrHostMismatch is returned when a host acts on an order assigned to another host.
	ErrHostMismatch = errors.New("order is not assigned to this host")

	// ErrShipmentFeeAlreadyPaid is returned when the shipment fee is requested or settled twice.
	ErrShipmentFeeAlreadyPaid = errors.New("shipment fee already paid")

	// ErrCustomerMismatch is returned when a customer acts on another customer's order.
	ErrCustomerMismatch = errors.New("order does not belong to this customer")
)

// IncompleteItemsError lists the items that block finalization, in order item order.
type IncompleteItemsError struct {
	ItemIDs []kernel.UUID
}

func (e *IncompleteItemsError) Error() string {
	ids := make([]string, 0, len(e.ItemIDs))
	for _, id := range e.ItemIDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("%s: %s", ErrIncompleteItems, strings.Join(ids, ", "))
}

func (e *IncompleteItemsError) Unwrap() error {
	return ErrIncompleteItems
}

// Order is the aggregate root of a customer's shipping request. A host is matched to it,
// the customer pays a service fee, the host receives and photographs every item and
// finally submits the total weight and the shipment cost.
//
// Order follows these invariants:
//   - Must have valid customer, origin country and destination address
//   - Must carry at least one item and item ids are unique within the order
//   - hostID is present if and only if status is Confirmed or Finalized
//   - Status transitions are monotonic: Drafted -> Confirmed -> Finalized
//   - Finalized requires every item to be complete
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	id                   kernel.UUID
	customerID           kernel.UUID
	originCountry        kernel.Country
	destination          kernel.Address
	items                []*Item
	status               Status
	shipmentCostEstimate kernel.Money

	// set on confirm
	hostID *kernel.UUID

	// set on finalize
	totalWeight         *kernel.Weight
	finalShipmentCost   *kernel.Money
	calculatorResultURL *string

	// set when the shipment fee webhook is processed
	shipmentFeePaidAt *time.Time

	isConstructed bool
}

// NewOrder creates a Drafted order without a host.
//
// Parameters:
//   - id: Unique identifier for the order
//   - customerID: Owner of the order
//   - originCountry: Country the items are bought in and where the host lives
//   - destination: Delivery address; its country takes part in the coverage check
//   - items: At least one item, ids unique within the order
//   - shipmentCostEstimate: Customer-facing estimate shown before the host weighs the parcel
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), "Sneakers", "Foot Locker", dims, weight, "apparel")
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, us, berlin, []*order.Item{item}, estimate)
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	originCountry kernel.Country,
	destination kernel.Address,
	items []*Item,
	shipmentCostEstimate kernel.Money,
) (*Order, error) {
	o := &Order{
		status:        Drafted,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setOriginCountry(originCountry),
		o.setDestination(destination),
		o.setItems(items),
		o.setShipmentCostEstimate(shipmentCostEstimate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence and re-checks the status/host invariant.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	originCountry kernel.Country,
	destination kernel.Address,
	items []*Item,
	shipmentCostEstimate kernel.Money,
	status Status,
	hostID *kernel.UUID,
	totalWeight *kernel.Weight,
	finalShipmentCost *kernel.Money,
	calculatorResultURL *string,
	shipmentFeePaidAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, customerID, originCountry, destination, items, shipmentCostEstimate)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if err = status.ValidateCanHaveHost(hostID != nil); err != nil {
		return nil, err
	}

	if hostID != nil {
		if err = hostID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.hostID = hostID
	o.totalWeight = totalWeight
	o.finalShipmentCost = finalShipmentCost
	o.calculatorResultURL = calculatorResultURL
	o.shipmentFeePaidAt = shipmentFeePaidAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owner of the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// OriginCountry returns the country the host must serve.
func (o *Order) OriginCountry() kernel.Country {
	return o.originCountry
}

// Destination returns the delivery address.
func (o *Order) Destination() kernel.Address {
	return o.destination
}

// Items returns the order items in their original order.
func (o *Order) Items() []*Item {
	return o.items
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ShipmentCostEstimate returns the estimate captured at creation.
func (o *Order) ShipmentCostEstimate() kernel.Money {
	return o.shipmentCostEstimate
}

// Host returns the assigned host's ID, nil while Drafted.
func (o *Order) Host() *kernel.UUID {
	return o.hostID
}

// TotalWeight returns the weighed parcel, nil until Finalized.
func (o *Order) TotalWeight() *kernel.Weight {
	return o.totalWeight
}

// FinalShipmentCost returns the cost submitted by the host, nil until Finalized.
func (o *Order) FinalShipmentCost() *kernel.Money {
	return o.finalShipmentCost
}

// CalculatorResultURL returns the optional link to the shipping calculator result.
func (o *Order) CalculatorResultURL() *string {
	return o.calculatorResultURL
}

// ShipmentFeePaidAt returns when the shipment fee was settled, nil while unpaid.
func (o *Order) ShipmentFeePaidAt() *time.Time {
	return o.shipmentFeePaidAt
}

// IsShipmentFeePaid reports whether the shipment fee webhook has been processed.
func (o *Order) IsShipmentFeePaid() bool {
	return o.shipmentFeePaidAt != nil
}

// ValidateConfirm checks the confirmation precondition without changing the order.
// See Status.ValidateConfirm.
func (o *Order) ValidateConfirm() error {
	return o.status.ValidateConfirm()
}

// Confirm binds the host and moves the order to Confirmed.
//
// This method enforces the following business rules:
//   - The host ID must be valid
//   - The order must be Drafted (ErrOrderAlreadyConfirmed otherwise)
//
// After a successful call Host() returns the bound host and never changes again.
func (o *Order) Confirm(hostID kernel.UUID) error {
	if err := hostID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.hostID = &hostID
	return nil
}

// RecordItemReceipt lets the assigned host record that an item arrived, with photos.
//
// This method enforces the following business rules:
//   - The order must be Confirmed
//   - hostID must be the assigned host (ErrHostMismatch otherwise)
//   - The item must belong to the order (ObjectNotFoundError otherwise)
func (o *Order) RecordItemReceipt(hostID kernel.UUID, itemID kernel.UUID, receivedAt time.Time, photos []string) error {
	if o.status != Confirmed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to receive items", o.status.String()),
		)
	}

	if err := o.validateHost(hostID); err != nil {
		return err
	}

	item := o.item(itemID)
	if item == nil {
		return errs.NewObjectNotFoundError("item", itemID.String())
	}

	return item.recordReceipt(receivedAt, photos)
}

// IncompleteItems returns the ids of items lacking a receipt date or photos.
func (o *Order) IncompleteItems() []kernel.UUID {
	ids := make([]kernel.UUID, 0)
	for _, item := range o.items {
		if !item.IsComplete() {
			ids = append(ids, item.ID())
		}
	}
	return ids
}

// Finalize records the weighed parcel and the final shipment cost.
//
// This method enforces the following business rules:
//   - The order must be Confirmed and assigned to hostID
//   - Every item must be complete (IncompleteItemsError otherwise, nothing changes)
//   - The final cost must be positive
//
// Example:
//
//	err := o.Finalize(hostID, weight, cost, nil)
//	var incomplete *order.IncompleteItemsError
//	if errors.As(err, &incomplete) {
//	    // tell the host which items still need photos or a receipt date
//	}
func (o *Order) Finalize(
	hostID kernel.UUID,
	totalWeight kernel.Weight,
	shipmentCost kernel.Money,
	calculatorResultURL *string,
) error {
	if err := errors.Join(totalWeight.Validate(), shipmentCost.Validate()); err != nil {
		return err
	}

	if !shipmentCost.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("shipmentCost", fmt.Errorf("%s is not greater than 0", shipmentCost))
	}

	newStatus, err := o.status.Finalize()
	if err != nil {
		return err
	}

	if err = o.validateHost(hostID); err != nil {
		return err
	}

	if ids := o.IncompleteItems(); len(ids) > 0 {
		return &IncompleteItemsError{ItemIDs: ids}
	}

	o.status = newStatus
	o.totalWeight = &totalWeight
	o.finalShipmentCost = &shipmentCost
	if calculatorResultURL != nil && strings.TrimSpace(*calculatorResultURL) != "" {
		u := strings.TrimSpace(*calculatorResultURL)
		o.calculatorResultURL = &u
	}
	return nil
}

// ValidatePayShipment checks that customerID may be charged the final shipment cost.
func (o *Order) ValidatePayShipment(customerID kernel.UUID) error {
	if !o.customerID.IsEqual(customerID) {
		return ErrCustomerMismatch
	}

	if o.status != Finalized {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to pay shipment", o.status.String()),
		)
	}

	if o.IsShipmentFeePaid() {
		return ErrShipmentFeeAlreadyPaid
	}

	return nil
}

// MarkShipmentFeePaid settles the shipment fee of a Finalized order.
// Returns ErrShipmentFeeAlreadyPaid on a second call.
func (o *Order) MarkShipmentFeePaid(at time.Time) error {
	if o.status != Finalized {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to settle the shipment fee", o.status.String()),
		)
	}

	if o.IsShipmentFeePaid() {
		return ErrShipmentFeeAlreadyPaid
	}

	paidAt := at.UTC()
	o.shipmentFeePaidAt = &paidAt
	return nil
}

func (o *Order) validateHost(hostID kernel.UUID) error {
	if o.hostID == nil || !o.hostID.IsEqual(hostID) {
		return ErrHostMismatch
	}
	return nil
}

func (o *Order) item(id kernel.UUID) *Item {
	for _, item := range o.items {
		if item.ID().IsEqual(id) {
			return item
		}
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setOriginCountry(country kernel.Country) error {
	if err := country.Validate(); err != nil {
		return err
	}
	o.originCountry = country
	return nil
}

func (o *Order) setDestination(destination kernel.Address) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	o.destination = destination
	return nil
}

// setItems requires at least one item with ids unique within the order.
func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if item == nil {
			return errs.NewValueIsRequiredError("item")
		}
		if _, ok := seen[item.ID()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("duplicate item id %s", item.ID()))
		}
		seen[item.ID()] = struct{}{}
	}

	o.items = items
	return nil
}

func (o *Order) setShipmentCostEstimate(estimate kernel.Money) error {
	if err := estimate.Validate(); err != nil {
		return err
	}
	o.shipmentCostEstimate = estimate
	return nil
}
