// Package services provides domain services for logic that spans aggregates.
//
// The package includes:
//   - HostMatcher: route coverage check and host selection for an order's origin country
//
// Domain services are pure: repositories load the candidates, the service decides.
package services
