package http_test

import (
	"context"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockConfirmOrderHandler struct{ mock.Mock }

func (m *MockConfirmOrderHandler) Handle(
	ctx context.Context,
	cmd commands.ConfirmOrderCommand,
) (commands.ConfirmOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ConfirmOrderResult), args.Error(1)
}

type MockRecordItemReceiptHandler struct{ mock.Mock }

func (m *MockRecordItemReceiptHandler) Handle(ctx context.Context, cmd commands.RecordItemReceiptCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockSubmitShipmentInfoHandler struct{ mock.Mock }

func (m *MockSubmitShipmentInfoHandler) Handle(ctx context.Context, cmd commands.SubmitShipmentInfoCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockPayShipmentHandler struct{ mock.Mock }

func (m *MockPayShipmentHandler) Handle(
	ctx context.Context,
	cmd commands.PayShipmentCommand,
) (commands.PayShipmentResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.PayShipmentResult), args.Error(1)
}

type MockDispatchHandler struct{ mock.Mock }

func (m *MockDispatchHandler) Handle(ctx context.Context, cmd commands.DispatchPaymentWebhookCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(
	ctx context.Context,
	query queries.GetOrderQuery,
) (*queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.GetOrderQueryResponse), args.Error(1)
}

type MockGetHostOrdersHandler struct{ mock.Mock }

func (m *MockGetHostOrdersHandler) Handle(
	ctx context.Context,
	query queries.GetHostOrdersQuery,
) ([]queries.GetHostOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetHostOrdersQueryResponse), args.Error(1)
}

type MockFindMatchHandler struct{ mock.Mock }

func (m *MockFindMatchHandler) Handle(
	ctx context.Context,
	query queries.FindMatchQuery,
) (*queries.FindMatchQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.FindMatchQueryResponse), args.Error(1)
}

type MockGetOrderEventsHandler struct{ mock.Mock }

func (m *MockGetOrderEventsHandler) Handle(
	ctx context.Context,
	query queries.GetOrderEventsQuery,
) ([]queries.GetOrderEventsQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetOrderEventsQueryResponse), args.Error(1)
}
