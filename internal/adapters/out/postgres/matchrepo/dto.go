// Package matchrepo stores the match ledger in the "matches" table.
package matchrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/match"

	"github.com/google/uuid"
)

// MatchDTO represents a match row. Rows are inserted and deleted, never updated.
type MatchDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_matches_order_host,priority:1"`
	HostID    uuid.UUID `gorm:"type:uuid;not null;index:idx_matches_order_host,priority:2"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
}

// TableName specifies the database table name for matches.
func (MatchDTO) TableName() string {
	return "matches"
}

func fromDomain(m *match.Match) MatchDTO {
	return MatchDTO{
		ID:        m.ID().Bytes(),
		OrderID:   m.OrderID().Bytes(),
		HostID:    m.HostID().Bytes(),
		CreatedAt: m.CreatedAt(),
	}
}

func toDomain(dto MatchDTO) (*match.Match, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}

	hostID, err := kernel.UUIDFromGoogle(dto.HostID)
	if err != nil {
		return nil, err
	}

	return match.RestoreMatch(id, orderID, hostID, dto.CreatedAt)
}
