package service

import (
	"context"
	"errors"
	"time"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/repository"
)

// AvailabilityService answers slot availability questions.  It never
// writes; its answer is advisory and re-checked by BookingService.Create.
type AvailabilityService struct {
	restaurants *repository.RestaurantRepo
	bookings    *repository.BookingRepo
	policy      CapacityPolicy
	timeout     time.Duration
}

func NewAvailabilityService(restaurants *repository.RestaurantRepo, bookings *repository.BookingRepo, policy CapacityPolicy, timeout time.Duration) *AvailabilityService {
	if policy == nil {
		policy = SlotPolicy{}
	}
	return &AvailabilityService{restaurants: restaurants, bookings: bookings, policy: policy, timeout: timeout}
}

// Check reports whether q.Guests can be seated at the slot and how many
// tables remain there.
func (s *AvailabilityService) Check(ctx context.Context, q AvailabilityQuery) (AvailabilityResult, error) {
	if q.RestaurantID == 0 {
		return AvailabilityResult{}, missing("restaurantId")
	}
	if q.Date == "" {
		return AvailabilityResult{}, missing("date")
	}
	if q.Time == "" {
		return AvailabilityResult{}, missing("time")
	}
	if q.Guests == 0 {
		return AvailabilityResult{}, missing("guests")
	}
	date, err := normalizeDate(q.Date)
	if err != nil {
		return AvailabilityResult{}, err
	}
	slot, err := normalizeTime(q.Time)
	if err != nil {
		return AvailabilityResult{}, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rest, err := s.restaurants.GetByID(ctx, q.RestaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return AvailabilityResult{}, NotFoundError{Resource: "restaurant", ID: q.RestaurantID}
		}
		return AvailabilityResult{}, storeErr(ctx, "load restaurant", err)
	}
	booked, err := s.bookings.BookedTables(ctx, rest.ID, date, slot)
	if err != nil {
		return AvailabilityResult{}, storeErr(ctx, "count booked tables", err)
	}

	remaining := remainingTables(rest.Tables, booked)
	return AvailabilityResult{
		Available:       s.policy.TablesNeeded(q.Guests) <= remaining,
		AvailableTables: remaining,
	}, nil
}

// withTimeout bounds ctx by d.  A non-positive d leaves ctx unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
