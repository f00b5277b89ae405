package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetHostOrdersQueryIsNotConstructed = errors.New(
	"GetHostOrdersQuery must be created via NewGetHostOrdersQuery constructor",
)

// GetHostOrdersQuery lists the orders linked to a host, oldest link first.
type GetHostOrdersQuery struct { //nolint:recvcheck //using for validation
	hostID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetHostOrdersQuery(hostID kernel.UUID) (GetHostOrdersQuery, error) {
	if err := hostID.Validate(); err != nil {
		return GetHostOrdersQuery{}, err
	}
	return GetHostOrdersQuery{hostID: hostID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetHostOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetHostOrdersQueryIsNotConstructed)
}

func (q GetHostOrdersQuery) HostID() kernel.UUID {
	return q.hostID
}

// GetHostOrdersQueryResponse is one linked order. Status is empty when the
// linked order row no longer exists.
type GetHostOrdersQueryResponse struct {
	OrderID  kernel.UUID
	Status   string
	LinkedAt time.Time
}
