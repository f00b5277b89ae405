package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface is implemented by the HTTP adapter, one method per operation.
type ServerInterface interface {
	CreateOrder(ctx echo.Context, customerId uuid.UUID) error
	PayShipment(ctx echo.Context, customerId uuid.UUID, orderId uuid.UUID) error
	GetOrder(ctx echo.Context, orderId uuid.UUID) error
	ConfirmOrder(ctx echo.Context, orderId uuid.UUID) error
	GetOrderEvents(ctx echo.Context, orderId uuid.UUID) error
	FindMatch(ctx echo.Context, orderId uuid.UUID, hostId uuid.UUID) error
	GetHostOrders(ctx echo.Context, hostId uuid.UUID) error
	RecordItemReceipt(ctx echo.Context, hostId uuid.UUID, orderId uuid.UUID, itemId uuid.UUID) error
	SubmitShipmentInfo(ctx echo.Context, hostId uuid.UUID, orderId uuid.UUID) error
	ReceivePaymentWebhook(ctx echo.Context) error
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// ServerInterfaceWrapper binds path parameters before delegating to the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindUUID(ctx echo.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	customerId, err := bindUUID(ctx, "customerId")
	if err != nil {
		return err
	}
	return w.Handler.CreateOrder(ctx, customerId)
}

func (w *ServerInterfaceWrapper) PayShipment(ctx echo.Context) error {
	customerId, err := bindUUID(ctx, "customerId")
	if err != nil {
		return err
	}
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.PayShipment(ctx, customerId, orderId)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ConfirmOrder(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ConfirmOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetOrderEvents(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrderEvents(ctx, orderId)
}

func (w *ServerInterfaceWrapper) FindMatch(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	hostId, err := bindUUID(ctx, "hostId")
	if err != nil {
		return err
	}
	return w.Handler.FindMatch(ctx, orderId, hostId)
}

func (w *ServerInterfaceWrapper) GetHostOrders(ctx echo.Context) error {
	hostId, err := bindUUID(ctx, "hostId")
	if err != nil {
		return err
	}
	return w.Handler.GetHostOrders(ctx, hostId)
}

func (w *ServerInterfaceWrapper) RecordItemReceipt(ctx echo.Context) error {
	hostId, err := bindUUID(ctx, "hostId")
	if err != nil {
		return err
	}
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	itemId, err := bindUUID(ctx, "itemId")
	if err != nil {
		return err
	}
	return w.Handler.RecordItemReceipt(ctx, hostId, orderId, itemId)
}

func (w *ServerInterfaceWrapper) SubmitShipmentInfo(ctx echo.Context) error {
	hostId, err := bindUUID(ctx, "hostId")
	if err != nil {
		return err
	}
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.SubmitShipmentInfo(ctx, hostId, orderId)
}

func (w *ServerInterfaceWrapper) ReceivePaymentWebhook(ctx echo.Context) error {
	return w.Handler.ReceivePaymentWebhook(ctx)
}

// RegisterHandlers mounts every operation of the document on router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/customers/:customerId/orders", w.CreateOrder)
	router.POST("/api/v1/customers/:customerId/orders/:orderId/shipment-payment", w.PayShipment)
	router.GET("/api/v1/orders/:orderId", w.GetOrder)
	router.POST("/api/v1/orders/:orderId/confirmation", w.ConfirmOrder)
	router.GET("/api/v1/orders/:orderId/events", w.GetOrderEvents)
	router.GET("/api/v1/orders/:orderId/matches/:hostId", w.FindMatch)
	router.GET("/api/v1/hosts/:hostId/orders", w.GetHostOrders)
	router.POST("/api/v1/hosts/:hostId/orders/:orderId/items/:itemId/receipt", w.RecordItemReceipt)
	router.POST("/api/v1/hosts/:hostId/orders/:orderId/shipment-info", w.SubmitShipmentInfo)
	router.POST("/api/v1/webhooks/payment", w.ReceivePaymentWebhook)
}
