package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/handler"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/logger"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/middleware"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/model"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/service"
)

type stubQuery struct{}

func (stubQuery) ListRestaurants(context.Context) ([]model.Restaurant, error) {
	return []model.Restaurant{{ID: 1, Name: "Tasty Bites", Tables: 10}}, nil
}

func (stubQuery) GetRestaurant(_ context.Context, id uint64) (*model.RestaurantDetail, error) {
	return nil, service.NotFoundError{Resource: "restaurant", ID: id}
}

func (stubQuery) GetBooking(_ context.Context, id uint64) (*model.BookingDetail, error) {
	return nil, service.NotFoundError{Resource: "booking", ID: id}
}

type stubChecker struct{}

func (stubChecker) Check(context.Context, service.AvailabilityQuery) (service.AvailabilityResult, error) {
	return service.AvailabilityResult{Available: true, AvailableTables: 3}, nil
}

type stubCreator struct{}

func (stubCreator) Create(context.Context, service.BookingRequest) (service.BookingResult, error) {
	return service.BookingResult{Success: true, BookingID: 1, Message: "Booking confirmed"}, nil
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Restaurants</h1>"), 0o644))

	lg := logger.Discard()
	return New(Deps{
		Restaurants:  handler.NewRestaurantHandler(stubQuery{}, lg),
		Availability: handler.NewAvailabilityHandler(stubChecker{}, lg),
		Bookings:     handler.NewBookingHandler(stubCreator{}, stubQuery{}, "http://localhost:3000", lg),
		DB:           okPinger{},
		Session:      middleware.SessionConfig{Secret: "s3cret", CookieName: "tb", TTL: time.Hour},
		PublicDir:    dir,
		Log:          lg,
	})
}

func TestRouter(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		method, target, body string
		wantCode             int
		wantContains         string
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK, "ok"},
		{http.MethodGet, "/api/restaurants", "", http.StatusOK, "Tasty Bites"},
		{http.MethodGet, "/api/restaurants/5", "", http.StatusNotFound, "Restaurant not found"},
		{http.MethodPost, "/api/check-availability", `{"restaurantId":1,"date":"2025-06-01","time":"19:00","guests":2}`, http.StatusOK, `"availableTables":3`},
		{http.MethodPost, "/api/bookings", `{"restaurantId":1}`, http.StatusOK, "Booking confirmed"},
		{http.MethodGet, "/api/bookings/5", "", http.StatusNotFound, "Booking not found"},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound, "Not found"},
		{http.MethodGet, "/", "", http.StatusOK, "Restaurants"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantContains)
			assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
		})
	}
}

func TestRouter_SetsSessionCookie(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/restaurants", nil))

	var found bool
	for _, ck := range rec.Result().Cookies() {
		found = found || ck.Name == "tb"
	}
	assert.True(t, found)
}
