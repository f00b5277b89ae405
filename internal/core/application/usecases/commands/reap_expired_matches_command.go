package commands

import (
	"errors"
	"time"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrReapExpiredMatchesCommandIsNotConstructed = errors.New(
	"ReapExpiredMatchesCommand must be created via NewReapExpiredMatchesCommand constructor",
)

// ReapExpiredMatchesCommand removes matches older than ttl.
type ReapExpiredMatchesCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewReapExpiredMatchesCommand creates the command. ttl must be positive.
func NewReapExpiredMatchesCommand(ttl time.Duration) (ReapExpiredMatchesCommand, error) {
	if ttl <= 0 {
		return ReapExpiredMatchesCommand{}, errs.NewValueIsOutOfRangeError("ttl", ttl, time.Nanosecond, "unbounded")
	}

	return ReapExpiredMatchesCommand{
		ttl:   ttl,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReapExpiredMatchesCommand) Validate() error {
	return c.guard.Validate(ErrReapExpiredMatchesCommandIsNotConstructed)
}

// TTL returns how long a match may wait for its payment.
func (c ReapExpiredMatchesCommand) TTL() time.Duration {
	return c.ttl
}
