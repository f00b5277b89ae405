// Package kernel provides the value objects shared by the shipping aggregates.
//
// The package includes:
//   - UUID: identifiers for orders, hosts, customers, items and matches
//   - Country and Address: origin country and delivery destination
//   - Money: decimal amounts with an ISO 4217 currency
//   - Weight: strictly positive kilograms
//
// Every value object embeds a guard.ConstructorGuard, so a zero value fails Validate
// and cannot slip into an aggregate through a struct literal.
package kernel
