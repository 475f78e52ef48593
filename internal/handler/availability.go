package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/logger"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/service"
)

type AvailabilityChecker interface {
	Check(ctx context.Context, q service.AvailabilityQuery) (service.AvailabilityResult, error)
}

type AvailabilityHandler struct {
	Checker AvailabilityChecker
	Log     *logger.Logger
}

func NewAvailabilityHandler(ch AvailabilityChecker, log *logger.Logger) *AvailabilityHandler {
	if ch == nil {
		panic("nil checker passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Checker: ch, Log: log}
}

type availabilityRequest struct {
	RestaurantID flexUint `json:"restaurantId"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Guests       flexUint `json:"guests"`
}

// Check handles POST /api/check-availability.
func (h *AvailabilityHandler) Check(c echo.Context) error {
	var body availabilityRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	guests, ok := body.Guests.u32()
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guests is too large", "field": "guests"})
	}
	res, err := h.Checker.Check(requestContext(c), service.AvailabilityQuery{
		RestaurantID: uint64(body.RestaurantID),
		Date:         body.Date,
		Time:         body.Time,
		Guests:       guests,
	})
	if err != nil {
		return writeError(c, h.Log, "check_availability", "Failed to check availability", err)
	}
	return c.JSON(http.StatusOK, res)
}
