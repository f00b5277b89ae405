package matchrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/match"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormMatchRepository implements ports.MatchRepository using GORM.
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a match ledger bound to db, which may be a transaction.
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// Record inserts a match. A primary key conflict maps to match.ErrDuplicateMatch.
func (r *GormMatchRepository) Record(ctx context.Context, m *match.Match) error {
	if err := m.Validate(); err != nil {
		return err
	}

	dto := fromDomain(m)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", match.ErrDuplicateMatch, m.ID())
		}
		return err
	}

	return nil
}

// Consume deletes the match and returns the deleted row in a single statement, so
// only one of several concurrent consumers sees it.
func (r *GormMatchRepository) Consume(ctx context.Context, id kernel.UUID) (*match.Match, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var deleted []MatchDTO
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id.Bytes()).
		Delete(&deleted)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 || len(deleted) == 0 {
		return nil, fmt.Errorf("%w: %s", match.ErrMatchNotFound, id)
	}

	return toDomain(deleted[0])
}

// Find returns the newest match for the pair without removing it.
func (r *GormMatchRepository) Find(ctx context.Context, orderID kernel.UUID, hostID kernel.UUID) (*match.Match, error) {
	if err := errors.Join(orderID.Validate(), hostID.Validate()); err != nil {
		return nil, err
	}

	var dto MatchDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND host_id = ?", orderID.Bytes(), hostID.Bytes()).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s, host %s", match.ErrMatchNotFound, orderID, hostID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a match by id; a missing row is not an error.
func (r *GormMatchRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&MatchDTO{}).Error
}

// DeleteCreatedBefore removes matches created strictly before cutoff.
func (r *GormMatchRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff.UTC()).Delete(&MatchDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
