package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrFindMatchQueryIsNotConstructed = errors.New(
	"FindMatchQuery must be created via NewFindMatchQuery constructor",
)

// FindMatchQuery looks up the pending match of an (order, host) pair without
// consuming it. Used to reconcile checkout sessions with the payment gateway.
type FindMatchQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	hostID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewFindMatchQuery(orderID, hostID kernel.UUID) (FindMatchQuery, error) {
	if err := errors.Join(orderID.Validate(), hostID.Validate()); err != nil {
		return FindMatchQuery{}, err
	}
	return FindMatchQuery{orderID: orderID, hostID: hostID, guard: guard.NewConstructorGuard()}, nil
}

func (q FindMatchQuery) Validate() error {
	return q.guard.Validate(ErrFindMatchQueryIsNotConstructed)
}

func (q FindMatchQuery) OrderID() kernel.UUID { return q.orderID }
func (q FindMatchQuery) HostID() kernel.UUID  { return q.hostID }

type FindMatchQueryResponse struct {
	MatchID   kernel.UUID
	OrderID   kernel.UUID
	HostID    kernel.UUID
	CreatedAt time.Time
}
