package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/host"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/match"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/payment"
	"shipping/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetConfirmedForHost(ctx context.Context, id kernel.UUID, hostID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockHostRepository struct{ mock.Mock }

func (m *MockHostRepository) Add(ctx context.Context, h *host.Host) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHostRepository) Update(ctx context.Context, h *host.Host) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHostRepository) Get(ctx context.Context, id kernel.UUID) (*host.Host, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*host.Host), args.Error(1)
}

func (m *MockHostRepository) GetAvailableInCountry(ctx context.Context, country kernel.Country) ([]*host.Host, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*host.Host), args.Error(1)
}

type MockMatchRepository struct{ mock.Mock }

func (m *MockMatchRepository) Record(ctx context.Context, mt *match.Match) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}

func (m *MockMatchRepository) Consume(ctx context.Context, id kernel.UUID) (*match.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*match.Match), args.Error(1)
}

func (m *MockMatchRepository) Find(ctx context.Context, orderID kernel.UUID, hostID kernel.UUID) (*match.Match, error) {
	args := m.Called(ctx, orderID, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*match.Match), args.Error(1)
}

func (m *MockMatchRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMatchRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockLinkageRepository struct{ mock.Mock }

func (m *MockLinkageRepository) LinkCustomerOrder(ctx context.Context, customerID kernel.UUID, orderID kernel.UUID) error {
	args := m.Called(ctx, customerID, orderID)
	return args.Error(0)
}

func (m *MockLinkageRepository) UnlinkCustomerOrder(ctx context.Context, customerID kernel.UUID, orderID kernel.UUID) error {
	args := m.Called(ctx, customerID, orderID)
	return args.Error(0)
}

func (m *MockLinkageRepository) LinkHostOrder(ctx context.Context, hostID kernel.UUID, orderID kernel.UUID) error {
	args := m.Called(ctx, hostID, orderID)
	return args.Error(0)
}

func (m *MockLinkageRepository) UnlinkHostOrder(ctx context.Context, hostID kernel.UUID, orderID kernel.UUID) error {
	args := m.Called(ctx, hostID, orderID)
	return args.Error(0)
}

func (m *MockLinkageRepository) HostOrders(ctx context.Context, hostID kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockLinkageRepository) CustomerOrders(ctx context.Context, customerID kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

// MockUoW satisfies every unit of work combination used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) HostRepository() ports.HostRepository {
	args := m.Called()
	return args.Get(0).(ports.HostRepository)
}

func (m *MockUoW) MatchRepository() ports.MatchRepository {
	args := m.Called()
	return args.Get(0).(ports.MatchRepository)
}

func (m *MockUoW) LinkageRepository() ports.LinkageRepository {
	args := m.Called()
	return args.Get(0).(ports.LinkageRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockOrderLinkageUoWFactory struct{ mock.Mock }

func (m *MockOrderLinkageUoWFactory) Create() commands.OrderLinkageUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderLinkageUoW)
}

type MockMatchUoWFactory struct{ mock.Mock }

func (m *MockMatchUoWFactory) Create() commands.MatchUoW {
	args := m.Called()
	return args.Get(0).(commands.MatchUoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, request payment.CheckoutRequest) (payment.CheckoutSession, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(payment.CheckoutSession), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event order.Event) {
	m.Called(ctx, event)
}

// expectEvent matches a published event by name.
func expectEvent(name order.EventName) any {
	return mock.MatchedBy(func(e order.Event) bool { return e.Name == name })
}

// newTxUoW returns a unit of work that accepts Begin, Commit and Rollback.
func newTxUoW() *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	return uow
}
