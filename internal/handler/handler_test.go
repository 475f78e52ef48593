package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/logger"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/model"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/service"
)

type fixture struct {
	e       *echo.Echo
	query   *mockQuery
	checker *mockChecker
	creator *mockCreator
}

func newFixture() *fixture {
	f := &fixture{e: echo.New(), query: &mockQuery{}, checker: &mockChecker{}, creator: &mockCreator{}}
	rh := NewRestaurantHandler(f.query, logger.Discard())
	ah := NewAvailabilityHandler(f.checker, logger.Discard())
	bh := NewBookingHandler(f.creator, f.query, "http://localhost:3000", logger.Discard())
	f.e.GET("/api/restaurants", rh.List)
	f.e.GET("/api/restaurants/:id", rh.Get)
	f.e.POST("/api/check-availability", ah.Check)
	f.e.POST("/api/bookings", bh.Create)
	f.e.GET("/api/bookings/:id", bh.Get)
	f.e.GET("/api/bookings/:id/qrcode", bh.QRCode)
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestRestaurantHandler_List(t *testing.T) {
	f := newFixture()
	f.query.On("ListRestaurants", mock.Anything).Return([]model.Restaurant{
		{ID: 1, Name: "Tasty Bites", Cuisine: "Indian", Tables: 10, OpeningTime: "11:00", ClosingTime: "23:00"},
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/restaurants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Tasty Bites","cuisine":"Indian","tables":10,
		"opening_time":"11:00","closing_time":"23:00"}]`, rec.Body.String())
}

func TestRestaurantHandler_List_StoreFailure(t *testing.T) {
	f := newFixture()
	f.query.On("ListRestaurants", mock.Anything).
		Return(nil, &service.StoreError{Op: "list restaurants", Err: errors.New("connection refused")}).Once()

	rec := f.do(http.MethodGet, "/api/restaurants", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch restaurants"}`, rec.Body.String())
}

func TestRestaurantHandler_Get(t *testing.T) {
	f := newFixture()
	f.query.On("GetRestaurant", mock.Anything, uint64(1)).Return(&model.RestaurantDetail{
		Restaurant: model.Restaurant{ID: 1, Name: "Tasty Bites", Tables: 10},
		Menu: []model.MenuItem{{ID: 2, RestaurantID: 1, Name: "Garlic Naan",
			Price: decimal.RequireFromString("3.99"), Category: "Bread"}},
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/restaurants/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":3.99`)
	assert.Contains(t, rec.Body.String(), `"menu":[`)
}

func TestRestaurantHandler_Get_NotFound(t *testing.T) {
	f := newFixture()
	f.query.On("GetRestaurant", mock.Anything, uint64(42)).
		Return(nil, service.NotFoundError{Resource: "restaurant", ID: 42}).Once()

	rec := f.do(http.MethodGet, "/api/restaurants/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Restaurant not found"}`, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/restaurants/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAvailabilityHandler_Check(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		query    service.AvailabilityQuery
		result   service.AvailabilityResult
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "numbers",
			body:     `{"restaurantId":3,"date":"2025-06-01","time":"19:00","guests":4}`,
			query:    service.AvailabilityQuery{RestaurantID: 3, Date: "2025-06-01", Time: "19:00", Guests: 4},
			result:   service.AvailabilityResult{Available: true, AvailableTables: 12},
			wantCode: http.StatusOK,
			wantBody: `{"available":true,"availableTables":12}`,
		},
		{
			name:     "form strings",
			body:     `{"restaurantId":"3","date":"2025-06-01","time":"19:00","guests":"4"}`,
			query:    service.AvailabilityQuery{RestaurantID: 3, Date: "2025-06-01", Time: "19:00", Guests: 4},
			result:   service.AvailabilityResult{Available: false, AvailableTables: 0},
			wantCode: http.StatusOK,
			wantBody: `{"available":false,"availableTables":0}`,
		},
		{
			name:     "missing guests",
			body:     `{"restaurantId":3,"date":"2025-06-01","time":"19:00"}`,
			query:    service.AvailabilityQuery{RestaurantID: 3, Date: "2025-06-01", Time: "19:00"},
			err:      service.ValidationError{Field: "guests", Message: "Missing required fields"},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Missing required fields","field":"guests"}`,
		},
		{
			name:     "unknown restaurant",
			body:     `{"restaurantId":99,"date":"2025-06-01","time":"19:00","guests":2}`,
			query:    service.AvailabilityQuery{RestaurantID: 99, Date: "2025-06-01", Time: "19:00", Guests: 2},
			err:      service.NotFoundError{Resource: "restaurant", ID: 99},
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Restaurant not found"}`,
		},
		{
			name:     "deadline",
			body:     `{"restaurantId":3,"date":"2025-06-01","time":"19:00","guests":2}`,
			query:    service.AvailabilityQuery{RestaurantID: 3, Date: "2025-06-01", Time: "19:00", Guests: 2},
			err:      fmt.Errorf("count booked tables: %w", service.ErrUnavailable),
			wantCode: http.StatusServiceUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.checker.On("Check", mock.Anything, tt.query).Return(tt.result, tt.err).Once()

			rec := f.do(http.MethodPost, "/api/check-availability", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			f.checker.AssertExpectations(t)
		})
	}
}

func TestAvailabilityHandler_Check_BadBody(t *testing.T) {
	f := newFixture()
	rec := f.do(http.MethodPost, "/api/check-availability", `{"restaurantId":"three"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.checker.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestBookingHandler_Create(t *testing.T) {
	f := newFixture()
	want := service.BookingRequest{
		RestaurantID: 1, UserName: "Ada", UserEmail: "ada@example.com",
		BookingDate: "2025-06-01", BookingTime: "19:00", Guests: 2,
		SpecialRequests: "window",
		OrderItems:      []service.OrderItemRequest{{MenuItemID: 1, Quantity: 2, SpecialRequests: "mild"}},
	}
	f.creator.On("Create", mock.Anything, want).
		Return(service.BookingResult{Success: true, BookingID: 7, Message: "Booking and order confirmed"}, nil).Once()

	rec := f.do(http.MethodPost, "/api/bookings", `{
		"restaurantId": "1", "userName": "Ada", "userEmail": "ada@example.com",
		"bookingDate": "2025-06-01", "bookingTime": "19:00", "guests": "2",
		"specialRequests": "window",
		"orderItems": [{"menuItemId": "1", "quantity": 2, "specialRequests": "mild"}]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"bookingId":7,"message":"Booking and order confirmed"}`, rec.Body.String())
	f.creator.AssertExpectations(t)
}

func TestBookingHandler_Create_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", service.ValidationError{Field: "userName", Message: "Missing required fields"},
			http.StatusBadRequest, `{"error":"Missing required fields","field":"userName"}`},
		{"not found", service.NotFoundError{Resource: "restaurant", ID: 1},
			http.StatusNotFound, `{"error":"Restaurant not found"}`},
		{"capacity", service.ErrCapacityExceeded,
			http.StatusConflict, `{"error":"No tables available for the requested time"}`},
		{"store", &service.StoreError{Op: "create booking", Err: errors.New("fk")},
			http.StatusInternalServerError, `{"error":"Failed to create booking"}`},
		{"unavailable", service.ErrUnavailable,
			http.StatusServiceUnavailable, `{"error":"Service temporarily unavailable, please retry"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.creator.On("Create", mock.Anything, mock.Anything).Return(service.BookingResult{}, tt.err).Once()

			rec := f.do(http.MethodPost, "/api/bookings", `{"restaurantId":1,"userName":"Ada"}`)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestBookingHandler_Get(t *testing.T) {
	f := newFixture()
	det := &model.BookingDetail{
		Booking: model.Booking{ID: 7, RestaurantID: 1, UserName: "Ada", UserEmail: "ada@example.com",
			BookingDate: "2025-06-01", BookingTime: "19:00", Guests: 2, Status: model.BookingConfirmed, TablesUsed: 1},
		RestaurantName: "Tasty Bites",
	}
	f.query.On("GetBooking", mock.Anything, uint64(7)).Return(det, nil).Once()

	rec := f.do(http.MethodGet, "/api/bookings/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"restaurant_name":"Tasty Bites"`)
	assert.Contains(t, body, `"orderItems":[]`)
	assert.Contains(t, body, `"special_requests":null`)
}

func TestBookingHandler_Get_NotFound(t *testing.T) {
	f := newFixture()
	f.query.On("GetBooking", mock.Anything, uint64(8)).Return(nil, service.NotFoundError{Resource: "booking", ID: 8}).Once()

	rec := f.do(http.MethodGet, "/api/bookings/8", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Booking not found"}`, rec.Body.String())
}

func TestBookingHandler_QRCode(t *testing.T) {
	f := newFixture()
	f.query.On("GetBooking", mock.Anything, uint64(7)).Return(&model.BookingDetail{}, nil).Once()

	rec := f.do(http.MethodGet, "/api/bookings/7/qrcode?size=128", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = f.do(http.MethodGet, "/api/bookings/7/qrcode?size=5000", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.query.On("GetBooking", mock.Anything, uint64(9)).Return(nil, service.NotFoundError{Resource: "booking", ID: 9}).Once()
	rec = f.do(http.MethodGet, "/api/bookings/9/qrcode", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirmationURL(t *testing.T) {
	assert.Equal(t, "https://book.example.com/confirmation.html?id=12", confirmationURL("https://book.example.com", 12))
}

func TestFlexUint(t *testing.T) {
	tests := []struct {
		in      string
		want    flexUint
		wantErr bool
	}{
		{`4`, 4, false},
		{`"4"`, 4, false},
		{`" 12 "`, 12, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`-1`, 0, true},
		{`"four"`, 0, true},
		{`2.5`, 0, true},
	}
	for _, tt := range tests {
		var f flexUint
		err := f.UnmarshalJSON([]byte(tt.in))
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, f, tt.in)
	}
}

type pingerFunc func() error

func (p pingerFunc) PingContext(context.Context) error { return p() }

func TestHealth(t *testing.T) {
	e := echo.New()
	e.GET("/ok", Health(pingerFunc(func() error { return nil })))
	e.GET("/down", Health(pingerFunc(func() error { return errors.New("gone") })))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
