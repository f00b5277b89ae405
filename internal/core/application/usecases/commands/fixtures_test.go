package commands_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"shipping/internal/core/domain/model/host"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/clock"
)

var (
	now = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	us  = kernel.MustNewCountry("US")
	de  = kernel.MustNewCountry("DE")
	jp  = kernel.MustNewCountry("JP")
)

func fixedClock() clock.Clock {
	return clock.NewFixed(now)
}

func newMatcher() services.HostMatcher {
	return services.NewHostMatcher([]kernel.Country{us}, []kernel.Country{de})
}

func usd(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), "USD")
	require.NoError(t, err)
	return m
}

func kg(t *testing.T, amount string) kernel.Weight {
	t.Helper()
	w, err := kernel.NewWeight(decimal.RequireFromString(amount))
	require.NoError(t, err)
	return w
}

func testDimensions() order.Dimensions {
	return order.Dimensions{
		Length: decimal.NewFromInt(30),
		Width:  decimal.NewFromInt(20),
		Height: decimal.NewFromInt(10),
	}
}

// newDraftedOrder builds a Drafted US -> destination order with n items.
func newDraftedOrder(t *testing.T, destination kernel.Country, n int) *order.Order {
	t.Helper()

	addr, err := kernel.NewAddress("Invalidenstr. 1", "Berlin", "10115", destination)
	require.NoError(t, err)

	items := make([]*order.Item, 0, n)
	for range n {
		item, err := order.NewItem(kernel.NewUUID(), "Sneakers", "Foot Locker", testDimensions(), kg(t, "1.2"), "apparel")
		require.NoError(t, err)
		items = append(items, item)
	}

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), us, addr, items, usd(t, "40.00"))
	require.NoError(t, err)
	return o
}

// newConfirmedOrder builds an order confirmed for hostID.
func newConfirmedOrder(t *testing.T, hostID kernel.UUID, n int) *order.Order {
	t.Helper()
	o := newDraftedOrder(t, de, n)
	require.NoError(t, o.Confirm(hostID))
	return o
}

// receiveAll records a receipt with one photo for every item of o.
func receiveAll(t *testing.T, o *order.Order, hostID kernel.UUID) {
	t.Helper()
	for _, item := range o.Items() {
		require.NoError(t, o.RecordItemReceipt(hostID, item.ID(), now, []string{"https://img.example/" + item.ID().String()}))
	}
}

// newFinalizedOrder builds a finalized order with a final cost of 25.00 USD.
func newFinalizedOrder(t *testing.T, hostID kernel.UUID) *order.Order {
	t.Helper()
	o := newConfirmedOrder(t, hostID, 2)
	receiveAll(t, o, hostID)
	require.NoError(t, o.Finalize(hostID, kg(t, "2.5"), usd(t, "25.00"), nil))
	return o
}

func newHost(t *testing.T, country kernel.Country) *host.Host {
	t.Helper()
	h, err := host.NewHost(kernel.NewUUID(), "Host "+country.Code(), country)
	require.NoError(t, err)
	return h
}
