package order

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
)

// ErrOrderAlreadyConfirmed is returned when a confirmation attempt targets an order
// that has already left the Drafted status.
var ErrOrderAlreadyConfirmed = errors.New("order already confirmed")

// Status represents the lifecycle state of a shipping order.
//
// State transitions:
//
//	Drafted ──> Confirmed ──> Finalized
//
// Transitions are monotonic. A rejected confirmation attempt leaves the order Drafted
// so the customer may retry; nothing leaves Finalized.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Drafted is the initial status. The order has no host and may be confirmed.
	Drafted

	// Confirmed indicates the service fee was paid and a host is bound to the order.
	Confirmed

	// Finalized indicates the host submitted weight and shipment cost for complete items.
	Finalized
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Drafted:   "Drafted",
		Confirmed: "Confirmed",
		Finalized: "Finalized",
	}
}

// Validate checks if the Status value is one of Drafted, Confirmed or Finalized.
// Used when statuses come back from persistence.
func (s Status) Validate() error {
	if s != Drafted && s != Confirmed && s != Finalized {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateConfirm checks that a confirmation attempt may start from this status.
//
// Returns:
//   - nil for Drafted
//   - ErrOrderAlreadyConfirmed (wrapped) for Confirmed and Finalized
//   - a value-is-invalid error for Unknown
//
// The orchestrator runs this guard before matching so an order that already has a
// host never mints a second match.
func (s Status) ValidateConfirm() error {
	switch s {
	case Drafted:
		return nil
	case Confirmed, Finalized:
		return fmt.Errorf("%w: status is %s", ErrOrderAlreadyConfirmed, s)
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to confirm", s.String()),
		)
	}
}

// Confirm transitions Drafted to Confirmed.
func (s Status) Confirm() (Status, error) {
	if err := s.ValidateConfirm(); err != nil {
		return 0, err
	}
	return Confirmed, nil
}

// Finalize transitions Confirmed to Finalized.
//
// Invalid transitions:
//   - Drafted -> Finalized (no host yet)
//   - Finalized -> Finalized (final state)
func (s Status) Finalize() (Status, error) {
	if s != Confirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to finalize", s.String()),
		)
	}
	return Finalized, nil
}

// ValidateCanHaveHost enforces that a host is present if and only if the order is
// Confirmed or Finalized.
func (s Status) ValidateCanHaveHost(host bool) error {
	hostStatus := s == Confirmed || s == Finalized

	if host && !hostStatus {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a host", s.String()),
		)
	}

	if !host && hostStatus {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no host", s.String()),
		)
	}

	return nil
}
