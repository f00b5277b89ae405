package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/match"
)

// MatchRepository is the match ledger: a short-lived store correlating a match id to
// an (order, host) pair.
type MatchRepository interface {
	// Record inserts a match. Returns match.ErrDuplicateMatch if the id exists.
	Record(ctx context.Context, m *match.Match) error

	// Consume atomically reads and deletes a match. Concurrent or repeated calls for
	// the same id succeed at most once; the others get match.ErrMatchNotFound.
	Consume(ctx context.Context, id kernel.UUID) (*match.Match, error)

	// Find is a read-only lookup by order and host. Returns match.ErrMatchNotFound if absent.
	Find(ctx context.Context, orderID kernel.UUID, hostID kernel.UUID) (*match.Match, error)

	// Delete removes a match without reading it. Deleting an absent match is not an error.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteCreatedBefore removes matches created before cutoff and returns how many.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
