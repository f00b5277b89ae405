package http

import (
	"errors"
	"net/http"

	"shipping/internal/adapters/in/http/api"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/match"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/payment"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const tryAgainLater = "Service is not available for this order right now, try again later"

// fail maps an application error to a response. Anything unknown is logged and
// answered with an opaque 500.
func (s *Server) fail(ctx echo.Context, err error) error {
	var incomplete *order.IncompleteItemsError
	if errors.As(err, &incomplete) {
		ids := make([]uuid.UUID, len(incomplete.ItemIDs))
		for i, id := range incomplete.ItemIDs {
			ids[i] = id.Bytes()
		}
		return ctx.JSON(http.StatusUnprocessableEntity, api.Error{
			Code:    http.StatusUnprocessableEntity,
			Message: "Some items are missing a receipt date or photos",
			ItemIds: ids,
		})
	}

	switch {
	case errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, match.ErrMatchNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return respond(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, commands.ErrServiceUnavailable),
		errors.Is(err, services.ErrNoHostAvailable):
		return respond(ctx, http.StatusConflict, tryAgainLater)
	case errors.Is(err, order.ErrOrderAlreadyConfirmed),
		errors.Is(err, order.ErrShipmentFeeAlreadyPaid):
		return respond(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, order.ErrHostMismatch),
		errors.Is(err, order.ErrCustomerMismatch):
		return respond(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, payment.ErrUnrecognizedWebhookPayload):
		return respond(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(ctx, http.StatusUnprocessableEntity, err.Error())
	}

	s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
		"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	return respond(ctx, http.StatusInternalServerError, "Internal server error")
}

func badRequest(ctx echo.Context, message string) error {
	return respond(ctx, http.StatusBadRequest, message)
}

func respond(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, api.Error{Code: code, Message: message})
}
