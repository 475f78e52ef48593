package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/repository"
)

func newQueryService(t *testing.T) (*QueryService, sqlmock.Sqlmock) {
	t.Helper()
	db, sm := newMockDB(t)
	return NewQueryService(repository.NewRestaurantRepo(db), repository.NewBookingRepo(db), time.Second), sm
}

func TestQueryService_ListRestaurants(t *testing.T) {
	svc, sm := newQueryService(t)
	sm.ExpectQuery(`FROM restaurants ORDER BY id`).WillReturnRows(
		sqlmock.NewRows(restaurantCols).
			AddRow(1, "Tasty Bites", "Indian", 10, "11:00", "23:00").
			AddRow(2, "Pasta Palace", "Italian", 8, "12:00", "22:00"))

	list, err := svc.ListRestaurants(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Tasty Bites", list[0].Name)
	assert.Equal(t, uint32(8), list[1].Tables)
}

func TestQueryService_GetRestaurant(t *testing.T) {
	svc, sm := newQueryService(t)
	sm.ExpectQuery(selRestaurant).WithArgs(2).WillReturnRows(
		sqlmock.NewRows(restaurantCols).AddRow(2, "Pasta Palace", "Italian", 8, "12:00", "22:00"))
	sm.ExpectQuery(`FROM menu_items\s+WHERE restaurant_id = \?`).WithArgs(2).WillReturnRows(
		sqlmock.NewRows([]string{"id", "restaurant_id", "name", "description", "price", "category"}).
			AddRow(3, 2, "Spaghetti Carbonara", "Classic pasta with creamy egg sauce", "12.99", "Main Course"))

	det, err := svc.GetRestaurant(context.Background(), 2)
	require.NoError(t, err)

	body, err := json.Marshal(det)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 2, "name": "Pasta Palace", "cuisine": "Italian", "tables": 8,
		"opening_time": "12:00", "closing_time": "22:00",
		"menu": [{"id": 3, "restaurant_id": 2, "name": "Spaghetti Carbonara",
		          "description": "Classic pasta with creamy egg sauce", "price": 12.99, "category": "Main Course"}]
	}`, string(body))
}

func TestQueryService_GetRestaurant_NotFound(t *testing.T) {
	svc, sm := newQueryService(t)
	sm.ExpectQuery(selRestaurant).WithArgs(9).WillReturnRows(sqlmock.NewRows(restaurantCols))

	_, err := svc.GetRestaurant(context.Background(), 9)
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Restaurant not found", err.Error())
}

func TestQueryService_GetBooking(t *testing.T) {
	svc, sm := newQueryService(t)
	created := time.Date(2025, 5, 30, 9, 0, 0, 0, time.UTC)
	sm.ExpectQuery(`FROM bookings b\s+JOIN restaurants r`).WithArgs(42).WillReturnRows(
		sqlmock.NewRows([]string{"id", "restaurant_id", "user_name", "user_email", "booking_date", "booking_time",
			"guests", "special_requests", "status", "tables_used", "created_at", "name"}).
			AddRow(42, 1, "Ada", "ada@example.com", "2025-06-01", "19:00", 2, nil, "confirmed", 1, created, "Tasty Bites"))
	sm.ExpectQuery(`FROM order_items oi\s+JOIN menu_items mi`).WithArgs(42).WillReturnRows(
		sqlmock.NewRows([]string{"id", "booking_id", "menu_item_id", "quantity", "special_requests", "name", "price"}).
			AddRow(7, 42, 1, 2, "extra spicy", "Butter Chicken", "14.99"))

	det, err := svc.GetBooking(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Tasty Bites", det.RestaurantName)
	require.Len(t, det.OrderItems, 1)
	assert.Equal(t, "Butter Chicken", det.OrderItems[0].ItemName)
	assert.Equal(t, "14.99", det.OrderItems[0].ItemPrice.StringFixed(2))
	assert.Equal(t, uint32(2), det.OrderItems[0].Quantity)
	assert.Nil(t, det.SpecialRequests)
	require.NotNil(t, det.OrderItems[0].SpecialRequests)
	assert.Equal(t, "extra spicy", *det.OrderItems[0].SpecialRequests)
}

func TestQueryService_GetBooking_NotFound(t *testing.T) {
	svc, sm := newQueryService(t)
	sm.ExpectQuery(`FROM bookings b`).WithArgs(5).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetBooking(context.Background(), 5)
	assert.EqualError(t, err, "Booking not found")
}
