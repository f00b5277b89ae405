package http

import (
	"errors"
	"fmt"

	"shipping/internal/adapters/in/http/api"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

func parseDecimal(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", name, err)
	}
	return d, nil
}

func toMoney(name string, m api.Money) (kernel.Money, error) {
	amount, err := parseDecimal(name, m.Amount)
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.NewMoney(amount, m.Currency)
}

func toWeight(name, kg string) (kernel.Weight, error) {
	amount, err := parseDecimal(name, kg)
	if err != nil {
		return kernel.Weight{}, err
	}
	return kernel.NewWeight(amount)
}

func toDimensions(d api.Dimensions) (order.Dimensions, error) {
	length, lengthErr := parseDecimal("length", d.Length)
	width, widthErr := parseDecimal("width", d.Width)
	height, heightErr := parseDecimal("height", d.Height)
	if err := errors.Join(lengthErr, widthErr, heightErr); err != nil {
		return order.Dimensions{}, err
	}
	return order.Dimensions{Length: length, Width: width, Height: height}, nil
}

func newCreateOrderCommand(orderID, customerID kernel.UUID, body api.NewOrder) (commands.CreateOrderCommand, error) {
	origin, err := kernel.NewCountry(body.OriginCountry)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	country, err := kernel.NewCountry(body.Destination.Country)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	destination, err := kernel.NewAddress(body.Destination.Street, body.Destination.City, body.Destination.PostalCode, country)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	estimate, err := toMoney("shipmentCostEstimate", body.ShipmentCostEstimate)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]commands.NewItem, 0, len(body.Items))
	for i, item := range body.Items {
		dims, dimsErr := toDimensions(item.Dimensions)
		weight, weightErr := toWeight("weightKg", item.WeightKg)
		if err = errors.Join(dimsErr, weightErr); err != nil {
			return commands.CreateOrderCommand{}, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, commands.NewItem{
			Title:      item.Title,
			StoreName:  item.StoreName,
			Dimensions: dims,
			Weight:     weight,
			Category:   item.Category,
		})
	}

	return commands.NewCreateOrderCommand(orderID, customerID, origin, destination, items, estimate)
}

func newSubmitShipmentInfoCommand(
	orderID, hostID kernel.UUID,
	body api.ShipmentInfo,
) (commands.SubmitShipmentInfoCommand, error) {
	weight, weightErr := toWeight("totalWeightKg", body.TotalWeightKg)
	cost, costErr := toMoney("shipmentCost", body.ShipmentCost)
	if err := errors.Join(weightErr, costErr); err != nil {
		return commands.SubmitShipmentInfoCommand{}, err
	}

	var calculatorURL string
	if body.CalculatorResultUrl != nil {
		calculatorURL = *body.CalculatorResultUrl
	}
	return commands.NewSubmitShipmentInfoCommand(orderID, hostID, weight, cost, calculatorURL)
}

func toAPIMoney(m queries.MoneyView) api.Money {
	return api.Money{Amount: m.Amount.StringFixed(kernel.MinorUnitExponent(m.Currency)), Currency: m.Currency}
}

func toAPIDimensions(item queries.ItemView) api.Dimensions {
	return api.Dimensions{
		Length: item.Length.String(),
		Width:  item.Width.String(),
		Height: item.Height.String(),
	}
}

func toAPIOrder(view *queries.GetOrderQueryResponse) api.Order {
	resp := api.Order{
		Id:            view.ID.Bytes(),
		CustomerId:    view.CustomerID.Bytes(),
		OriginCountry: view.OriginCountry,
		Destination: api.Address{
			Street:     view.Destination.Street,
			City:       view.Destination.City,
			PostalCode: view.Destination.PostalCode,
			Country:    view.Destination.Country,
		},
		Status:               view.Status,
		ShipmentCostEstimate: toAPIMoney(view.ShipmentCostEstimate),
		CalculatorResultUrl:  view.CalculatorResultURL,
		ShipmentFeePaidAt:    view.ShipmentFeePaidAt,
		Items:                make([]api.OrderItem, len(view.Items)),
	}

	if view.HostID != nil {
		hostID := view.HostID.Bytes()
		resp.HostId = &hostID
	}
	if view.TotalWeightKg != nil {
		kg := view.TotalWeightKg.String()
		resp.TotalWeightKg = &kg
	}
	if view.FinalShipmentCost != nil {
		cost := toAPIMoney(*view.FinalShipmentCost)
		resp.FinalShipmentCost = &cost
	}

	for i, item := range view.Items {
		resp.Items[i] = api.OrderItem{
			Id:           item.ID.Bytes(),
			Title:        item.Title,
			StoreName:    item.StoreName,
			Dimensions:   toAPIDimensions(item),
			WeightKg:     item.WeightKg.String(),
			Category:     item.Category,
			ReceivedDate: item.ReceivedDate,
			Photos:       item.Photos,
		}
	}

	return resp
}
