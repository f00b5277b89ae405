package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"shipping/internal/adapters/in/http/api"
	"shipping/internal/adapters/out/payment"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxWebhookBody = 64 << 10

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	ConfirmOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) (commands.ConfirmOrderResult, error)
	}
	RecordItemReceiptHandler interface {
		Handle(ctx context.Context, cmd commands.RecordItemReceiptCommand) error
	}
	SubmitShipmentInfoHandler interface {
		Handle(ctx context.Context, cmd commands.SubmitShipmentInfoCommand) error
	}
	PayShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.PayShipmentCommand) (commands.PayShipmentResult, error)
	}
	DispatchPaymentWebhookHandler interface {
		Handle(ctx context.Context, cmd commands.DispatchPaymentWebhookCommand) error
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.GetOrderQueryResponse, error)
	}
	GetHostOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetHostOrdersQuery) ([]queries.GetHostOrdersQueryResponse, error)
	}
	FindMatchHandler interface {
		Handle(ctx context.Context, query queries.FindMatchQuery) (*queries.FindMatchQueryResponse, error)
	}
	GetOrderEventsHandler interface {
		Handle(ctx context.Context, query queries.GetOrderEventsQuery) ([]queries.GetOrderEventsQueryResponse, error)
	}
	WebhookVerifier interface {
		Verify(header string, body []byte) error
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder            CreateOrderHandler
	ConfirmOrder           ConfirmOrderHandler
	RecordItemReceipt      RecordItemReceiptHandler
	SubmitShipmentInfo     SubmitShipmentInfoHandler
	PayShipment            PayShipmentHandler
	DispatchPaymentWebhook DispatchPaymentWebhookHandler
	GetOrder               GetOrderHandler
	GetHostOrders          GetHostOrdersHandler
	FindMatch              FindMatchHandler
	GetOrderEvents         GetOrderEventsHandler
}

// Server implements api.ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	verifier WebhookVerifier
	logger   *slog.Logger
}

var _ api.ServerInterface = (*Server)(nil)

// NewServer creates the HTTP adapter. verifier authenticates payment webhooks.
func NewServer(handlers Handlers, verifier WebhookVerifier, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		verifier: verifier,
		logger:   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/customers/{customerId}/orders.
func (s *Server) CreateOrder(ctx echo.Context, customerId uuid.UUID) error {
	var body api.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromGoogle(customerId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := newCreateOrderCommand(kernel.NewUUID(), customerID, body)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.CreatedOrder{Id: cmd.OrderID().Bytes()})
}

// ConfirmOrder handles POST /api/v1/orders/{orderId}/confirmation.
func (s *Server) ConfirmOrder(ctx echo.Context, orderId uuid.UUID) error {
	orderID, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.handlers.ConfirmOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	matchID := result.MatchID.Bytes()
	hostID := result.HostID.Bytes()
	return ctx.JSON(http.StatusCreated, api.CheckoutSession{
		CheckoutSessionId: result.CheckoutSessionID,
		CheckoutUrl:       result.CheckoutURL,
		MatchId:           &matchID,
		HostId:            &hostID,
	})
}

// RecordItemReceipt handles POST /api/v1/hosts/{hostId}/orders/{orderId}/items/{itemId}/receipt.
func (s *Server) RecordItemReceipt(ctx echo.Context, hostId uuid.UUID, orderId uuid.UUID, itemId uuid.UUID) error {
	var body api.ItemReceipt
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ids, err := toKernelIDs(orderId, hostId, itemId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRecordItemReceiptCommand(ids[0], ids[1], ids[2], body.ReceivedAt, body.Photos)
	if err != nil {
		return badRequest(ctx, "Invalid receipt: "+err.Error())
	}

	if err = s.handlers.RecordItemReceipt.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitShipmentInfo handles POST /api/v1/hosts/{hostId}/orders/{orderId}/shipment-info.
func (s *Server) SubmitShipmentInfo(ctx echo.Context, hostId uuid.UUID, orderId uuid.UUID) error {
	var body api.ShipmentInfo
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ids, err := toKernelIDs(orderId, hostId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := newSubmitShipmentInfoCommand(ids[0], ids[1], body)
	if err != nil {
		return badRequest(ctx, "Invalid shipment info: "+err.Error())
	}

	if err = s.handlers.SubmitShipmentInfo.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PayShipment handles POST /api/v1/customers/{customerId}/orders/{orderId}/shipment-payment.
func (s *Server) PayShipment(ctx echo.Context, customerId uuid.UUID, orderId uuid.UUID) error {
	ids, err := toKernelIDs(orderId, customerId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewPayShipmentCommand(ids[0], ids[1])
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.handlers.PayShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, api.CheckoutSession{
		CheckoutSessionId: result.CheckoutSessionID,
		CheckoutUrl:       result.CheckoutURL,
	})
}

// ReceivePaymentWebhook handles POST /api/v1/webhooks/payment. Only completed
// checkout sessions are dispatched; other event types are acknowledged and
// dropped. A 5xx answer makes the provider redeliver.
func (s *Server) ReceivePaymentWebhook(ctx echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxWebhookBody))
	if err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if err = s.verifier.Verify(ctx.Request().Header.Get(payment.SignatureHeader), body); err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "Rejected payment webhook", "error", err)
		return ctx.JSON(http.StatusUnauthorized, api.Error{
			Code:    http.StatusUnauthorized,
			Message: "Invalid webhook signature",
		})
	}

	event, err := payment.ParseWebhookEvent(body)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if event.Type != payment.EventCheckoutCompleted {
		s.logger.DebugContext(ctx.Request().Context(), "Ignoring payment webhook", "type", event.Type, "event_id", event.ID)
		return ctx.NoContent(http.StatusNoContent)
	}

	cmd, err := commands.NewDispatchPaymentWebhookCommand(event.Metadata)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.DispatchPaymentWebhook.Handle(ctx.Request().Context(), cmd.WithCheckoutSessionID(event.SessionID)); err != nil {
		return s.fail(ctx, err)
	}

	s.logger.InfoContext(ctx.Request().Context(), "Payment webhook processed",
		"event_id", event.ID, "session_id", event.SessionID, "fee_type", event.Metadata["feeType"])
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId uuid.UUID) error {
	orderID, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAPIOrder(view))
}

// GetHostOrders handles GET /api/v1/hosts/{hostId}/orders.
func (s *Server) GetHostOrders(ctx echo.Context, hostId uuid.UUID) error {
	hostID, err := kernel.UUIDFromGoogle(hostId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetHostOrdersQuery(hostID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orders, err := s.handlers.GetHostOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.HostOrder, len(orders))
	for i, o := range orders {
		response[i] = api.HostOrder{
			OrderId:  o.OrderID.Bytes(),
			Status:   o.Status,
			LinkedAt: o.LinkedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// FindMatch handles GET /api/v1/orders/{orderId}/matches/{hostId}.
func (s *Server) FindMatch(ctx echo.Context, orderId uuid.UUID, hostId uuid.UUID) error {
	ids, err := toKernelIDs(orderId, hostId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewFindMatchQuery(ids[0], ids[1])
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	m, err := s.handlers.FindMatch.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, api.Match{
		Id:        m.MatchID.Bytes(),
		OrderId:   m.OrderID.Bytes(),
		HostId:    m.HostID.Bytes(),
		CreatedAt: m.CreatedAt,
	})
}

// GetOrderEvents handles GET /api/v1/orders/{orderId}/events.
func (s *Server) GetOrderEvents(ctx echo.Context, orderId uuid.UUID) error {
	orderID, err := kernel.UUIDFromGoogle(orderId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderEventsQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	events, err := s.handlers.GetOrderEvents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]api.OrderEvent, len(events))
	for i, e := range events {
		response[i] = api.OrderEvent{Name: e.Name, OccurredAt: e.OccurredAt, Attributes: e.Attributes}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toKernelIDs(ids ...uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, len(ids))
	for i, id := range ids {
		k, err := kernel.UUIDFromGoogle(id)
		if err != nil {
			return nil, err
		}
		out[i] = k
	}
	return out, nil
}
