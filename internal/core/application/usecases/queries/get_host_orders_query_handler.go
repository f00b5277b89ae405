package queries

import (
	"context"
	"database/sql"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetHostOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetHostOrdersQueryHandler(db *gorm.DB) GetHostOrdersQueryHandler {
	return GetHostOrdersQueryHandler{db: db}
}

// Handle returns the host's linked orders. An unknown host yields an empty slice.
func (h GetHostOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetHostOrdersQuery,
) ([]GetHostOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			ho.order_id,
			o.status,
			ho.created_at
		FROM host_orders ho
		LEFT JOIN orders o ON o.id = ho.order_id
		WHERE ho.host_id = ?
		ORDER BY ho.created_at, ho.order_id
	`, query.HostID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetHostOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp   GetHostOrdersQueryResponse
			id     uuid.UUID
			status sql.NullInt16
		)

		if err = rows.Scan(&id, &status, &resp.LinkedAt); err != nil {
			return nil, err
		}

		if resp.OrderID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if status.Valid {
			resp.Status = order.Status(status.Int16).String()
		}
		resp.LinkedAt = resp.LinkedAt.UTC()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
