// Package hostrepo provides data transfer objects and mapping functions for host persistence.
package hostrepo

import (
	"time"

	"shipping/internal/core/domain/model/host"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// HostDTO represents the database structure for persisting hosts.
type HostDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	OriginCountry string    `gorm:"type:char(2);not null;index:idx_hosts_country_available,priority:1"`
	Available     bool      `gorm:"not null;index:idx_hosts_country_available,priority:2"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for host entities.
func (HostDTO) TableName() string {
	return "hosts"
}

func fromDomain(h *host.Host) HostDTO {
	return HostDTO{
		ID:            h.ID().Bytes(),
		Name:          h.Name(),
		OriginCountry: h.OriginCountry().Code(),
		Available:     h.IsAvailable(),
	}
}

func toDomain(dto HostDTO) (*host.Host, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	country, err := kernel.NewCountry(dto.OriginCountry)
	if err != nil {
		return nil, err
	}

	return host.RestoreHost(id, dto.Name, country, dto.Available)
}
