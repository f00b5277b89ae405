package commands

import (
	"context"

	"shipping/internal/pkg/clock"
)

// ReapExpiredMatchesCommandHandler deletes matches whose checkout was abandoned.
// A payment arriving after its match was reaped is treated as a missing match.
type ReapExpiredMatchesCommandHandler struct {
	uowFactory MatchUoWFactory
	clock      clock.Clock
}

// NewReapExpiredMatchesCommandHandler creates the reaper.
func NewReapExpiredMatchesCommandHandler(uowFactory MatchUoWFactory, clk clock.Clock) ReapExpiredMatchesCommandHandler {
	return ReapExpiredMatchesCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle deletes matches created more than cmd.TTL() ago and returns how many were
// removed.
func (h *ReapExpiredMatchesCommandHandler) Handle(ctx context.Context, cmd ReapExpiredMatchesCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := h.clock.Now().Add(-cmd.TTL())
	deleted, err := uow.MatchRepository().DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
