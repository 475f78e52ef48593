package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/model"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/service"
)

type mockQuery struct {
	mock.Mock
}

func (m *mockQuery) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Restaurant)
	return list, args.Error(1)
}

func (m *mockQuery) GetRestaurant(ctx context.Context, id uint64) (*model.RestaurantDetail, error) {
	args := m.Called(ctx, id)
	det, _ := args.Get(0).(*model.RestaurantDetail)
	return det, args.Error(1)
}

func (m *mockQuery) GetBooking(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	args := m.Called(ctx, id)
	det, _ := args.Get(0).(*model.BookingDetail)
	return det, args.Error(1)
}

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) Check(ctx context.Context, q service.AvailabilityQuery) (service.AvailabilityResult, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(service.AvailabilityResult), args.Error(1)
}

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) Create(ctx context.Context, req service.BookingRequest) (service.BookingResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(service.BookingResult), args.Error(1)
}
