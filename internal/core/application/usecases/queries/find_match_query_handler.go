package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/match"
)

// MatchFinder reads matches without consuming them.
type MatchFinder interface {
	Find(ctx context.Context, orderID kernel.UUID, hostID kernel.UUID) (*match.Match, error)
}

type FindMatchQueryHandler struct {
	matches MatchFinder
}

func NewFindMatchQueryHandler(matches MatchFinder) FindMatchQueryHandler {
	return FindMatchQueryHandler{matches: matches}
}

// Handle returns the newest match of the pair. A missing match surfaces as
// match.ErrMatchNotFound.
func (h FindMatchQueryHandler) Handle(ctx context.Context, query FindMatchQuery) (*FindMatchQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	m, err := h.matches.Find(ctx, query.OrderID(), query.HostID())
	if err != nil {
		return nil, err
	}

	return &FindMatchQueryResponse{
		MatchID:   m.ID(),
		OrderID:   m.OrderID(),
		HostID:    m.HostID(),
		CreatedAt: m.CreatedAt(),
	}, nil
}
