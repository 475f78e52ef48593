package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/logger"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/service"
)

// writeError maps a service error onto the HTTP response.  fallback is the
// message clients see for store failures; the cause is only logged.
func writeError(c echo.Context, log *logger.Logger, action, fallback string, err error) error {
	var ve service.ValidationError
	var nf service.NotFoundError
	switch {
	case errors.As(err, &ve):
		body := echo.Map{"error": ve.Message}
		if ve.Field != "" {
			body["field"] = ve.Field
		}
		return c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &nf):
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Error()})
	case errors.Is(err, service.ErrCapacityExceeded):
		return c.JSON(http.StatusConflict, echo.Map{"error": "No tables available for the requested time"})
	case errors.Is(err, service.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		log.Warn(action, requestID(c), "request deadline exceeded", logger.Err(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Service temporarily unavailable, please retry"})
	}
	log.Error(action, requestID(c), fallback, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// requestContext carries the request ID into the service layer.
func requestContext(c echo.Context) context.Context {
	return service.WithRequestID(c.Request().Context(), requestID(c))
}
