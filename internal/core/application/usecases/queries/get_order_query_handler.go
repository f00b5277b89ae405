package queries

import (
	"context"
	"database/sql"
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order and its items with plain SQL.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order read model or an ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	resp, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	items, err := h.readItems(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(ctx context.Context, orderID kernel.UUID) (*GetOrderQueryResponse, error) {
	var (
		resp                      GetOrderQueryResponse
		id, customerID            uuid.UUID
		status                    int
		hostID                    uuid.NullUUID
		totalWeight, finalCost    decimal.NullDecimal
		finalCurrency, calculator sql.NullString
		shipmentFeePaidAt         sql.NullTime
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			origin_country,
			destination_street,
			destination_city,
			destination_postal_code,
			destination_country,
			estimate_amount,
			estimate_currency,
			status,
			host_id,
			total_weight_kg,
			final_cost_amount,
			final_cost_currency,
			calculator_result_url,
			shipment_fee_paid_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&id,
		&customerID,
		&resp.OriginCountry,
		&resp.Destination.Street,
		&resp.Destination.City,
		&resp.Destination.PostalCode,
		&resp.Destination.Country,
		&resp.ShipmentCostEstimate.Amount,
		&resp.ShipmentCostEstimate.Currency,
		&status,
		&hostID,
		&totalWeight,
		&finalCost,
		&finalCurrency,
		&calculator,
		&shipmentFeePaidAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("orderID", orderID)
	}
	if err != nil {
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return nil, err
	}
	if resp.CustomerID, err = kernel.UUIDFromGoogle(customerID); err != nil {
		return nil, err
	}
	resp.Status = order.Status(status).String()

	if hostID.Valid {
		host, hostErr := kernel.UUIDFromGoogle(hostID.UUID)
		if hostErr != nil {
			return nil, hostErr
		}
		resp.HostID = &host
	}
	if totalWeight.Valid {
		resp.TotalWeightKg = &totalWeight.Decimal
	}
	if finalCost.Valid && finalCurrency.Valid {
		resp.FinalShipmentCost = &MoneyView{Amount: finalCost.Decimal, Currency: finalCurrency.String}
	}
	if calculator.Valid {
		resp.CalculatorResultURL = &calculator.String
	}
	if shipmentFeePaidAt.Valid {
		paidAt := shipmentFeePaidAt.Time.UTC()
		resp.ShipmentFeePaidAt = &paidAt
	}

	return &resp, nil
}

func (h GetOrderQueryHandler) readItems(ctx context.Context, orderID kernel.UUID) ([]ItemView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			title,
			store_name,
			length,
			width,
			height,
			weight_kg,
			category,
			received_date,
			photos
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ItemView, 0)
	for rows.Next() {
		var (
			item         ItemView
			id           uuid.UUID
			receivedDate sql.NullTime
			photos       pq.StringArray
		)

		err = rows.Scan(
			&id,
			&item.Title,
			&item.StoreName,
			&item.Length,
			&item.Width,
			&item.Height,
			&item.WeightKg,
			&item.Category,
			&receivedDate,
			&photos,
		)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if receivedDate.Valid {
			at := receivedDate.Time.UTC()
			item.ReceivedDate = &at
		}
		item.Photos = []string(photos)
		if item.Photos == nil {
			item.Photos = []string{}
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
