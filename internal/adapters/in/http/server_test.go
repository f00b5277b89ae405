package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/in/http/api"
	"shipping/internal/adapters/out/payment"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	domainpayment "shipping/internal/core/domain/model/payment"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/clock"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

type serverFixture struct {
	createOrder  *MockCreateOrderHandler
	confirmOrder *MockConfirmOrderHandler
	receipt      *MockRecordItemReceiptHandler
	shipmentInfo *MockSubmitShipmentInfoHandler
	payShipment  *MockPayShipmentHandler
	dispatch     *MockDispatchHandler
	getOrder     *MockGetOrderHandler
	hostOrders   *MockGetHostOrdersHandler
	findMatch    *MockFindMatchHandler
	events       *MockGetOrderEventsHandler
	verifier     *payment.WebhookVerifier
	echo         *echo.Echo
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	f := &serverFixture{
		createOrder:  new(MockCreateOrderHandler),
		confirmOrder: new(MockConfirmOrderHandler),
		receipt:      new(MockRecordItemReceiptHandler),
		shipmentInfo: new(MockSubmitShipmentInfoHandler),
		payShipment:  new(MockPayShipmentHandler),
		dispatch:     new(MockDispatchHandler),
		getOrder:     new(MockGetOrderHandler),
		hostOrders:   new(MockGetHostOrdersHandler),
		findMatch:    new(MockFindMatchHandler),
		events:       new(MockGetOrderEventsHandler),
		verifier:     payment.NewWebhookVerifier("whsec_test", clock.NewFixed(now)),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:            f.createOrder,
		ConfirmOrder:           f.confirmOrder,
		RecordItemReceipt:      f.receipt,
		SubmitShipmentInfo:     f.shipmentInfo,
		PayShipment:            f.payShipment,
		DispatchPaymentWebhook: f.dispatch,
		GetOrder:               f.getOrder,
		GetHostOrders:          f.hostOrders,
		FindMatch:              f.findMatch,
		GetOrderEvents:         f.events,
	}, f.verifier, logger)

	e, err := httpin.NewEcho(server, logger)
	require.NoError(t, err)
	f.echo = e
	return f
}

func (f *serverFixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.Error {
	t.Helper()
	var e api.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

const newOrderBody = `{
	"originCountry": "US",
	"destination": {"street": "Invalidenstr. 1", "city": "Berlin", "postalCode": "10115", "country": "DE"},
	"shipmentCostEstimate": {"amount": "42.50", "currency": "USD"},
	"items": [{
		"title": "Sneakers",
		"storeName": "Foot Locker",
		"dimensions": {"length": "30.5", "width": "20", "height": "10"},
		"weightKg": "1.25",
		"category": "apparel"
	}]
}`

func TestHealth(t *testing.T) {
	f := newServerFixture(t)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestCreateOrder(t *testing.T) {
	t.Run("should draft the order for the customer", func(t *testing.T) {
		// Given
		f := newServerFixture(t)
		customerID := kernel.NewUUID()
		var got commands.CreateOrderCommand
		f.createOrder.On("Handle", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(commands.CreateOrderCommand) }).
			Return(nil)

		// When
		rec := f.do(http.MethodPost, "/api/v1/customers/"+customerID.String()+"/orders", newOrderBody)

		// Then
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var created api.CreatedOrder
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, got.OrderID().String(), created.Id.String())
		assert.Equal(t, customerID, got.CustomerID())
		assert.Equal(t, "US", got.OriginCountry().Code())
		require.Len(t, got.Items(), 1)
		assert.True(t, decimal.RequireFromString("30.5").Equal(got.Items()[0].Dimensions.Length))
	})

	t.Run("should reject a body without items before reaching the handler", func(t *testing.T) {
		f := newServerFixture(t)
		body := strings.Replace(newOrderBody, `"items": [`, `"ignored": [`, 1)

		rec := f.do(http.MethodPost, "/api/v1/customers/"+kernel.NewUUID().String()+"/orders", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject a malformed customer id", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/customers/not-a-uuid/orders", newOrderBody)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestConfirmOrder(t *testing.T) {
	orderID := kernel.NewUUID()
	path := "/api/v1/orders/" + orderID.String() + "/confirmation"

	t.Run("should return the checkout session", func(t *testing.T) {
		f := newServerFixture(t)
		result := commands.ConfirmOrderResult{
			MatchID:           kernel.NewUUID(),
			HostID:            kernel.NewUUID(),
			CheckoutSessionID: "cs_1",
			CheckoutURL:       "https://pay.example.com/cs_1",
		}
		f.confirmOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ConfirmOrderCommand) bool {
			return cmd.OrderID() == orderID
		})).Return(result, nil)

		rec := f.do(http.MethodPost, path, "")

		require.Equal(t, http.StatusCreated, rec.Code)
		var session api.CheckoutSession
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
		assert.Equal(t, "cs_1", session.CheckoutSessionId)
		assert.Equal(t, result.MatchID.String(), session.MatchId.String())
		assert.Equal(t, result.HostID.String(), session.HostId.String())
	})

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"should map a missing order to 404", commands.ErrOrderNotFound, http.StatusNotFound},
		{"should map an uncovered route to 409", commands.ErrServiceUnavailable, http.StatusConflict},
		{"should map no available host to 409", services.ErrNoHostAvailable, http.StatusConflict},
		{"should map an already confirmed order to 409", order.ErrOrderAlreadyConfirmed, http.StatusConflict},
		{"should hide gateway failures behind 500", errors.New("gateway down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t)
			f.confirmOrder.On("Handle", mock.Anything, mock.Anything).Return(commands.ConfirmOrderResult{}, tt.err)

			rec := f.do(http.MethodPost, path, "")

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
			if tt.code == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "gateway down")
			}
		})
	}
}

func TestSubmitShipmentInfo(t *testing.T) {
	hostID, orderID := kernel.NewUUID(), kernel.NewUUID()
	path := "/api/v1/hosts/" + hostID.String() + "/orders/" + orderID.String() + "/shipment-info"
	body := `{"totalWeightKg": "2.5", "shipmentCost": {"amount": "25.00", "currency": "USD"}}`

	t.Run("should finalize", func(t *testing.T) {
		f := newServerFixture(t)
		f.shipmentInfo.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitShipmentInfoCommand) bool {
			return cmd.OrderID() == orderID && cmd.HostID() == hostID && cmd.CalculatorResultURL() == nil
		})).Return(nil)

		rec := f.do(http.MethodPost, path, body)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		f.shipmentInfo.AssertExpectations(t)
	})

	t.Run("should list incomplete items with 422", func(t *testing.T) {
		f := newServerFixture(t)
		missing := kernel.NewUUID()
		f.shipmentInfo.On("Handle", mock.Anything, mock.Anything).
			Return(&order.IncompleteItemsError{ItemIDs: []kernel.UUID{missing}})

		rec := f.do(http.MethodPost, path, body)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		apiErr := decodeError(t, rec)
		require.Len(t, apiErr.ItemIds, 1)
		assert.Equal(t, missing.String(), apiErr.ItemIds[0].String())
	})

	t.Run("should reject a malformed weight", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodPost, path, `{"totalWeightKg": "heavy", "shipmentCost": {"amount": "25.00", "currency": "USD"}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.shipmentInfo.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestRecordItemReceipt(t *testing.T) {
	hostID, orderID, itemID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	path := "/api/v1/hosts/" + hostID.String() + "/orders/" + orderID.String() + "/items/" + itemID.String() + "/receipt"

	t.Run("should record the receipt", func(t *testing.T) {
		f := newServerFixture(t)
		f.receipt.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RecordItemReceiptCommand) bool {
			return cmd.ItemID() == itemID && len(cmd.Photos()) == 1
		})).Return(nil)

		rec := f.do(http.MethodPost, path, `{"receivedAt": "2025-03-14T09:00:00Z", "photos": ["a.jpg"]}`)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("should map a foreign host to 403", func(t *testing.T) {
		f := newServerFixture(t)
		f.receipt.On("Handle", mock.Anything, mock.Anything).Return(order.ErrHostMismatch)

		rec := f.do(http.MethodPost, path, `{"receivedAt": "2025-03-14T09:00:00Z", "photos": ["a.jpg"]}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestPayShipment(t *testing.T) {
	customerID, orderID := kernel.NewUUID(), kernel.NewUUID()
	path := "/api/v1/customers/" + customerID.String() + "/orders/" + orderID.String() + "/shipment-payment"

	f := newServerFixture(t)
	f.payShipment.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PayShipmentCommand) bool {
		return cmd.OrderID() == orderID && cmd.CustomerID() == customerID
	})).Return(commands.PayShipmentResult{CheckoutSessionID: "cs_2", CheckoutURL: "https://pay.example.com/cs_2"}, nil)

	rec := f.do(http.MethodPost, path, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	var session api.CheckoutSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "cs_2", session.CheckoutSessionId)
	assert.Nil(t, session.MatchId)
}

func TestReceivePaymentWebhook(t *testing.T) {
	const path = "/api/v1/webhooks/payment"
	matchID := kernel.NewUUID()
	completed := `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1",` +
		`"metadata":{"feeType":"service","matchId":"` + matchID.String() + `"}}}}`

	t.Run("should dispatch a signed completed session", func(t *testing.T) {
		// Given
		f := newServerFixture(t)
		f.dispatch.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DispatchPaymentWebhookCommand) bool {
			return cmd.Correlation().FeeType == domainpayment.FeeTypeService &&
				cmd.Correlation().MatchID == matchID &&
				cmd.CheckoutSessionID() == "cs_1"
		})).Return(nil)

		// When
		rec := f.do(http.MethodPost, path, completed,
			payment.SignatureHeader, f.verifier.SignatureFor(now, []byte(completed)))

		// Then
		assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
		f.dispatch.AssertExpectations(t)
	})

	t.Run("should reject an unsigned webhook with 401", func(t *testing.T) {
		f := newServerFixture(t)

		rec := f.do(http.MethodPost, path, completed)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		f.dispatch.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should acknowledge other event types without dispatching", func(t *testing.T) {
		f := newServerFixture(t)
		body := `{"id":"evt_2","type":"checkout.session.expired","data":{"object":{"id":"cs_1"}}}`

		rec := f.do(http.MethodPost, path, body, payment.SignatureHeader, f.verifier.SignatureFor(now, []byte(body)))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		f.dispatch.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should answer 400 for an unrecognized fee type", func(t *testing.T) {
		f := newServerFixture(t)
		body := `{"id":"evt_3","type":"checkout.session.completed","data":{"object":{"metadata":{"feeType":"tip"}}}}`

		rec := f.do(http.MethodPost, path, body, payment.SignatureHeader, f.verifier.SignatureFor(now, []byte(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.dispatch.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should answer 500 so the provider redelivers", func(t *testing.T) {
		f := newServerFixture(t)
		f.dispatch.On("Handle", mock.Anything, mock.Anything).Return(errors.New("db down"))

		rec := f.do(http.MethodPost, path, completed,
			payment.SignatureHeader, f.verifier.SignatureFor(now, []byte(completed)))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("should render the read model", func(t *testing.T) {
		f := newServerFixture(t)
		orderID, hostID, itemID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		cost := decimal.RequireFromString("25")
		f.getOrder.On("Handle", mock.Anything, mock.Anything).Return(&queries.GetOrderQueryResponse{
			ID:                   orderID,
			CustomerID:           kernel.NewUUID(),
			OriginCountry:        "US",
			Destination:          queries.AddressView{Street: "s", City: "Berlin", Country: "DE"},
			Status:               "Finalized",
			ShipmentCostEstimate: queries.MoneyView{Amount: decimal.RequireFromString("42.5"), Currency: "USD"},
			HostID:               &hostID,
			FinalShipmentCost:    &queries.MoneyView{Amount: cost, Currency: "USD"},
			Items: []queries.ItemView{{
				ID:     itemID,
				Title:  "Sneakers",
				Length: decimal.NewFromInt(1), Width: decimal.NewFromInt(1), Height: decimal.NewFromInt(1),
				WeightKg: decimal.RequireFromString("1.25"),
				Photos:   []string{"a.jpg"},
			}},
		}, nil)

		rec := f.do(http.MethodGet, "/api/v1/orders/"+orderID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		var view api.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "Finalized", view.Status)
		assert.Equal(t, "42.50", view.ShipmentCostEstimate.Amount)
		require.NotNil(t, view.FinalShipmentCost)
		assert.Equal(t, "25.00", view.FinalShipmentCost.Amount)
		assert.Equal(t, hostID.String(), view.HostId.String())
		require.Len(t, view.Items, 1)
		assert.Equal(t, "1.25", view.Items[0].WeightKg)
	})

	t.Run("should answer 404 for an unknown order", func(t *testing.T) {
		f := newServerFixture(t)
		f.getOrder.On("Handle", mock.Anything, mock.Anything).Return(nil, commands.ErrOrderNotFound)

		rec := f.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHostOrdersMatchesAndEvents(t *testing.T) {
	f := newServerFixture(t)
	orderID, hostID := kernel.NewUUID(), kernel.NewUUID()

	f.hostOrders.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetHostOrdersQueryResponse{
		{OrderID: orderID, Status: "Confirmed", LinkedAt: now},
	}, nil)
	f.findMatch.On("Handle", mock.Anything, mock.Anything).Return(&queries.FindMatchQueryResponse{
		MatchID: kernel.NewUUID(), OrderID: orderID, HostID: hostID, CreatedAt: now,
	}, nil)
	f.events.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetOrderEventsQueryResponse{
		{Name: "order.created", OccurredAt: now, Attributes: map[string]string{}},
	}, nil)

	rec := f.do(http.MethodGet, "/api/v1/hosts/"+hostID.String()+"/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hostOrders []api.HostOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hostOrders))
	require.Len(t, hostOrders, 1)
	assert.Equal(t, orderID.String(), hostOrders[0].OrderId.String())

	rec = f.do(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/matches/"+hostID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var m api.Match
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, hostID.String(), m.HostId.String())

	rec = f.do(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var events []api.OrderEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "order.created", events[0].Name)
}
