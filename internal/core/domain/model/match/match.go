// Package match models the short-lived correlation between a checkout session and
// an (order, host) pairing.
package match

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// ErrDuplicateMatch is returned when a match id is recorded twice.
	ErrDuplicateMatch = errors.New("duplicate match")

	// ErrMatchNotFound is returned when a match is absent: already consumed, expired,
	// or never created.
	ErrMatchNotFound = errors.New("match not found")

	// ErrMatchIsNotConstructed is returned when a Match was not created through NewMatch.
	ErrMatchIsNotConstructed = errors.New("Match must be created via NewMatch constructor")
)

// Match ties a freshly generated id to the order and the host selected for it. The id
// travels through the payment gateway as correlation payload and comes back with the
// completion webhook. Matches are never updated: they are recorded, then consumed once
// or reaped after their time to live.
type Match struct {
	id            kernel.UUID
	orderID       kernel.UUID
	hostID        kernel.UUID
	createdAt     time.Time
	isConstructed bool
}

// NewMatch creates a match with a new random id.
func NewMatch(orderID, hostID kernel.UUID, createdAt time.Time) (*Match, error) {
	return RestoreMatch(kernel.NewUUID(), orderID, hostID, createdAt)
}

// RestoreMatch rebuilds a match from persistence.
func RestoreMatch(id, orderID, hostID kernel.UUID, createdAt time.Time) (*Match, error) {
	var timeErr error
	if createdAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("createdAt")
	}

	if err := errors.Join(id.Validate(), orderID.Validate(), hostID.Validate(), timeErr); err != nil {
		return nil, err
	}

	return &Match{
		id:            id,
		orderID:       orderID,
		hostID:        hostID,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// Validate ensures the Match was created through its constructor.
func (m *Match) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMatchIsNotConstructed
	}
	return nil
}

func (m *Match) ID() kernel.UUID      { return m.id }
func (m *Match) OrderID() kernel.UUID { return m.orderID }
func (m *Match) HostID() kernel.UUID  { return m.hostID }
func (m *Match) CreatedAt() time.Time { return m.createdAt }
