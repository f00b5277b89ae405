package commands

import "errors"

var (
	// ErrOrderNotFound is returned when the target order does not exist or, for the
	// finalizer, is not Confirmed for the calling host.
	ErrOrderNotFound = errors.New("order not found")

	// ErrServiceUnavailable is returned when the order's route is outside coverage.
	ErrServiceUnavailable = errors.New("service unavailable for this route")
)
