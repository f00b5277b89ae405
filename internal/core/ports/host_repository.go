package ports

import (
	"context"

	"shipping/internal/core/domain/model/host"
	"shipping/internal/core/domain/model/kernel"
)

// HostRepository defines the persistence contract for hosts.
type HostRepository interface {
	Add(ctx context.Context, aggregate *host.Host) error
	Update(ctx context.Context, aggregate *host.Host) error
	Get(ctx context.Context, id kernel.UUID) (*host.Host, error)

	// GetAvailableInCountry returns available hosts serving country, least loaded
	// first. The rows stay share-locked until the transaction ends so a selected host
	// cannot be made unavailable before the match is committed.
	GetAvailableInCountry(ctx context.Context, country kernel.Country) ([]*host.Host, error)
}
