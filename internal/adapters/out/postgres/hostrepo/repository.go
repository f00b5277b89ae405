package hostrepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/host"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormHostRepository implements ports.HostRepository using GORM.
type GormHostRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormHostRepository creates a new GORM host repository.
func NewGormHostRepository(db *gorm.DB, tracker aggregateTracker) *GormHostRepository {
	return &GormHostRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new host to the database.
func (r *GormHostRepository) Add(ctx context.Context, aggregate *host.Host) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing host to the database.
func (r *GormHostRepository) Update(ctx context.Context, aggregate *host.Host) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&HostDTO{}).
		Where("id = ?", dto.ID).
		Select("Name", "OriginCountry", "Available", "UpdatedAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("host", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a host by ID.
func (r *GormHostRepository) Get(ctx context.Context, id kernel.UUID) (*host.Host, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HostDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("host", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAvailableInCountry retrieves available hosts in country, ordered by how many
// orders they already hold and then by id. Rows are locked FOR SHARE so concurrent
// matchers can read them while an availability change waits for the match to commit.
//
// Example:
//
//	candidates, err := repo.GetAvailableInCountry(ctx, kernel.MustNewCountry("US"))
//	if err != nil {
//	    return err
//	}
//	selected, err := matcher.MatchHost(origin, candidates)
func (r *GormHostRepository) GetAvailableInCountry(ctx context.Context, country kernel.Country) ([]*host.Host, error) {
	if err := country.Validate(); err != nil {
		return nil, err
	}

	var dtos []HostDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "SHARE", Table: clause.Table{Name: clause.CurrentTable}}).
		Where("origin_country = ? AND available = ?", country.Code(), true).
		Order("(SELECT COUNT(*) FROM host_orders ho WHERE ho.host_id = hosts.id) ASC, hosts.id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	hosts := make([]*host.Host, 0, len(dtos))
	for _, dto := range dtos {
		h, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, h)
	}

	return hosts, nil
}
