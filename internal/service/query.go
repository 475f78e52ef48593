package service

import (
	"context"
	"errors"
	"time"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/model"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/repository"
)

// QueryService serves the read-only lookups behind the browse and booking
// detail pages.
type QueryService struct {
	restaurants *repository.RestaurantRepo
	bookings    *repository.BookingRepo
	timeout     time.Duration
}

func NewQueryService(restaurants *repository.RestaurantRepo, bookings *repository.BookingRepo, timeout time.Duration) *QueryService {
	return &QueryService{restaurants: restaurants, bookings: bookings, timeout: timeout}
}

// ListRestaurants returns every restaurant in insertion order.
func (s *QueryService) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	list, err := s.restaurants.ListAll(ctx)
	if err != nil {
		return nil, storeErr(ctx, "list restaurants", err)
	}
	return list, nil
}

// GetRestaurant returns a restaurant with its menu.
func (s *QueryService) GetRestaurant(ctx context.Context, id uint64) (*model.RestaurantDetail, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	rest, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return nil, NotFoundError{Resource: "restaurant", ID: id}
		}
		return nil, storeErr(ctx, "load restaurant", err)
	}
	menu, err := s.restaurants.ListMenu(ctx, id)
	if err != nil {
		return nil, storeErr(ctx, "load menu", err)
	}
	return &model.RestaurantDetail{Restaurant: *rest, Menu: menu}, nil
}

// GetBooking returns a booking with its restaurant name and order items.
func (s *QueryService) GetBooking(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	det, err := s.bookings.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, NotFoundError{Resource: "booking", ID: id}
		}
		return nil, storeErr(ctx, "load booking", err)
	}
	return det, nil
}
