package pgtest

import (
	"testing"

	"shipping/internal/core/domain/model/host"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// DraftedOrder builds a valid US -> DE order with itemCount items.
func DraftedOrder(t testing.TB, itemCount int) *order.Order {
	t.Helper()

	addr, err := kernel.NewAddress("Invalidenstr. 1", "Berlin", "10115", kernel.MustNewCountry("DE"))
	require.NoError(t, err)

	weight, err := kernel.NewWeight(decimal.RequireFromString("1.25"))
	require.NoError(t, err)

	dims := order.Dimensions{
		Length: decimal.RequireFromString("30.5"),
		Width:  decimal.NewFromInt(20),
		Height: decimal.NewFromInt(10),
	}

	items := make([]*order.Item, 0, itemCount)
	for range itemCount {
		item, itemErr := order.NewItem(kernel.NewUUID(), "Sneakers", "Foot Locker", dims, weight, "apparel")
		require.NoError(t, itemErr)
		items = append(items, item)
	}

	estimate, err := kernel.NewMoney(decimal.RequireFromString("42.50"), "USD")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.MustNewCountry("US"), addr, items, estimate)
	require.NoError(t, err)
	return o
}

// Host builds an available host in country.
func Host(t testing.TB, country string) *host.Host {
	t.Helper()
	h, err := host.NewHost(kernel.NewUUID(), "Host "+country, kernel.MustNewCountry(country))
	require.NoError(t, err)
	return h
}
