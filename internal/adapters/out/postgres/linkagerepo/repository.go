package linkagerepo

import (
	"context"
	"errors"

	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLinkageRepository implements ports.LinkageRepository using GORM.
type GormLinkageRepository struct {
	db *gorm.DB
}

// NewGormLinkageRepository creates a linkage repository bound to db, which may be a transaction.
func NewGormLinkageRepository(db *gorm.DB) *GormLinkageRepository {
	return &GormLinkageRepository{db: db}
}

// LinkCustomerOrder adds orderID to the customer's list. Linking twice is a no-op.
func (r *GormLinkageRepository) LinkCustomerOrder(ctx context.Context, customerID kernel.UUID, orderID kernel.UUID) error {
	if err := errors.Join(customerID.Validate(), orderID.Validate()); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&CustomerOrderDTO{CustomerID: customerID.Bytes(), OrderID: orderID.Bytes()}).Error
}

// UnlinkCustomerOrder removes orderID from the customer's list.
func (r *GormLinkageRepository) UnlinkCustomerOrder(ctx context.Context, customerID kernel.UUID, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ? AND order_id = ?", customerID.Bytes(), orderID.Bytes()).
		Delete(&CustomerOrderDTO{}).Error
}

// LinkHostOrder adds orderID to the host's list. Linking twice is a no-op.
func (r *GormLinkageRepository) LinkHostOrder(ctx context.Context, hostID kernel.UUID, orderID kernel.UUID) error {
	if err := errors.Join(hostID.Validate(), orderID.Validate()); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&HostOrderDTO{HostID: hostID.Bytes(), OrderID: orderID.Bytes()}).Error
}

// UnlinkHostOrder removes orderID from the host's list.
func (r *GormLinkageRepository) UnlinkHostOrder(ctx context.Context, hostID kernel.UUID, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Where("host_id = ? AND order_id = ?", hostID.Bytes(), orderID.Bytes()).
		Delete(&HostOrderDTO{}).Error
}

// HostOrders returns the host's order ids, oldest link first.
func (r *GormLinkageRepository) HostOrders(ctx context.Context, hostID kernel.UUID) ([]kernel.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&HostOrderDTO{}).
		Where("host_id = ?", hostID.Bytes()).
		Order("created_at ASC, order_id ASC").
		Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}

	return toKernelIDs(ids)
}

// CustomerOrders returns the customer's order ids, oldest link first.
func (r *GormLinkageRepository) CustomerOrders(ctx context.Context, customerID kernel.UUID) ([]kernel.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&CustomerOrderDTO{}).
		Where("customer_id = ?", customerID.Bytes()).
		Order("created_at ASC, order_id ASC").
		Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}

	return toKernelIDs(ids)
}

func toKernelIDs(ids []uuid.UUID) ([]kernel.UUID, error) {
	result := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		kid, err := kernel.UUIDFromGoogle(id)
		if err != nil {
			return nil, err
		}
		result = append(result, kid)
	}
	return result, nil
}
