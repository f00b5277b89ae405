package postgres

import (
	"shipping/internal/adapters/out/postgres/eventrepo"
	"shipping/internal/adapters/out/postgres/hostrepo"
	"shipping/internal/adapters/out/postgres/linkagerepo"
	"shipping/internal/adapters/out/postgres/matchrepo"
	"shipping/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&hostrepo.HostDTO{},
		&matchrepo.MatchDTO{},
		&linkagerepo.CustomerOrderDTO{},
		&linkagerepo.HostOrderDTO{},
		&eventrepo.OrderEventDTO{},
	)
}
