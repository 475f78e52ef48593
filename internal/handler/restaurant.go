package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/logger"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/model"
)

// RestaurantQuerier is the read side used by the browse pages.
type RestaurantQuerier interface {
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	GetRestaurant(ctx context.Context, id uint64) (*model.RestaurantDetail, error)
}

// RestaurantHandler serves the restaurant list and restaurant detail.
type RestaurantHandler struct {
	Query RestaurantQuerier
	Log   *logger.Logger
}

func NewRestaurantHandler(q RestaurantQuerier, log *logger.Logger) *RestaurantHandler {
	if q == nil {
		panic("nil querier passed to NewRestaurantHandler")
	}
	return &RestaurantHandler{Query: q, Log: log}
}

// List handles GET /api/restaurants.
func (h *RestaurantHandler) List(c echo.Context) error {
	list, err := h.Query.ListRestaurants(requestContext(c))
	if err != nil {
		return writeError(c, h.Log, "list_restaurants", "Failed to fetch restaurants", err)
	}
	return c.JSON(http.StatusOK, list)
}

// Get handles GET /api/restaurants/:id and returns the restaurant with its
// menu.
func (h *RestaurantHandler) Get(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Restaurant not found"})
	}
	det, err := h.Query.GetRestaurant(requestContext(c), id)
	if err != nil {
		return writeError(c, h.Log, "get_restaurant", "Failed to fetch restaurant", err)
	}
	return c.JSON(http.StatusOK, det)
}
