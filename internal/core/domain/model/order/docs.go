// Package order provides the Order aggregate of the shipping service together with
// its items, its status machine and the advisory events raised around it.
//
// The package includes:
//   - Order: the aggregate root owning items, host assignment and billing data
//   - Item: an entity scoped to one order, complete once received and photographed
//   - Status: Drafted -> Confirmed -> Finalized, monotonic
//   - Event: fire-and-forget notifications such as order.awaiting_payment
//
// Key business rules:
//   - A host is bound only by a confirmed service payment
//   - A host is present if and only if the order is Confirmed or Finalized
//   - Finalization requires every item to be complete and reports the missing ones
//   - Rejected confirmation attempts never change the status
package order
