package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/logger"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/middleware"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/model"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/service"
)

type BookingCreator interface {
	Create(ctx context.Context, req service.BookingRequest) (service.BookingResult, error)
}

type BookingQuerier interface {
	GetBooking(ctx context.Context, id uint64) (*model.BookingDetail, error)
}

// BookingHandler creates bookings and serves booking confirmations.
// PublicBaseURL is the absolute origin of the frontend; QR codes point at
// its confirmation page.
type BookingHandler struct {
	Bookings      BookingCreator
	Query         BookingQuerier
	PublicBaseURL string
	Log           *logger.Logger
}

func NewBookingHandler(b BookingCreator, q BookingQuerier, publicBaseURL string, log *logger.Logger) *BookingHandler {
	if b == nil || q == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: b, Query: q, PublicBaseURL: publicBaseURL, Log: log}
}

type orderItemBody struct {
	MenuItemID      flexUint `json:"menuItemId"`
	Quantity        flexUint `json:"quantity"`
	SpecialRequests string   `json:"specialRequests"`
}

type createBookingBody struct {
	RestaurantID    flexUint        `json:"restaurantId"`
	UserName        string          `json:"userName"`
	UserEmail       string          `json:"userEmail"`
	BookingDate     string          `json:"bookingDate"`
	BookingTime     string          `json:"bookingTime"`
	Guests          flexUint        `json:"guests"`
	SpecialRequests string          `json:"specialRequests"`
	OrderItems      []orderItemBody `json:"orderItems"`
}

func (b createBookingBody) toRequest() (service.BookingRequest, error) {
	guests, ok := b.Guests.u32()
	if !ok {
		return service.BookingRequest{}, service.ValidationError{Field: "guests", Message: "guests is too large"}
	}
	req := service.BookingRequest{
		RestaurantID:    uint64(b.RestaurantID),
		UserName:        b.UserName,
		UserEmail:       b.UserEmail,
		BookingDate:     b.BookingDate,
		BookingTime:     b.BookingTime,
		Guests:          guests,
		SpecialRequests: b.SpecialRequests,
		OrderItems:      make([]service.OrderItemRequest, 0, len(b.OrderItems)),
	}
	for i, it := range b.OrderItems {
		qty, ok := it.Quantity.u32()
		if !ok {
			return service.BookingRequest{}, service.ValidationError{
				Field: fmt.Sprintf("orderItems[%d].quantity", i), Message: "quantity is too large",
			}
		}
		req.OrderItems = append(req.OrderItems, service.OrderItemRequest{
			MenuItemID:      uint64(it.MenuItemID),
			Quantity:        qty,
			SpecialRequests: it.SpecialRequests,
		})
	}
	return req, nil
}

// Create handles POST /api/bookings.  The booking and its order items are
// written atomically; the response is either a confirmation or one error.
func (h *BookingHandler) Create(c echo.Context) error {
	var body createBookingBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req, err := body.toRequest()
	if err != nil {
		return writeError(c, h.Log, "create_booking", "Failed to create booking", err)
	}
	res, err := h.Bookings.Create(requestContext(c), req)
	if err != nil {
		return writeError(c, h.Log, "create_booking", "Failed to create booking", err)
	}
	h.Log.Info("create_booking", requestID(c), res.Message,
		slog.Uint64("booking_id", res.BookingID), slog.String("session_id", middleware.SessionID(c)))
	return c.JSON(http.StatusOK, res)
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
	}
	det, err := h.Query.GetBooking(requestContext(c), id)
	if err != nil {
		return writeError(c, h.Log, "get_booking", "Failed to fetch booking", err)
	}
	return c.JSON(http.StatusOK, det)
}

const (
	qrDefaultSize = 256
	qrMinSize     = 128
	qrMaxSize     = 1024
)

// QRCode handles GET /api/bookings/:id/qrcode.  It renders a PNG linking to
// the booking's confirmation page.  ?size= sets the edge length in pixels.
func (h *BookingHandler) QRCode(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
	}
	size := qrDefaultSize
	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < qrMinSize || n > qrMaxSize {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": fmt.Sprintf("size must be between %d and %d", qrMinSize, qrMaxSize), "field": "size",
			})
		}
		size = n
	}
	if _, err := h.Query.GetBooking(requestContext(c), id); err != nil {
		return writeError(c, h.Log, "booking_qrcode", "Failed to fetch booking", err)
	}
	png, err := qrcode.Encode(confirmationURL(h.PublicBaseURL, id), qrcode.Medium, size)
	if err != nil {
		return writeError(c, h.Log, "booking_qrcode", "Failed to render QR code", err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func confirmationURL(base string, id uint64) string {
	return fmt.Sprintf("%s/confirmation.html?id=%d", base, id)
}
