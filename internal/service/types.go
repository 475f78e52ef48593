package service

// AvailabilityQuery asks whether a party can be seated at a slot.
type AvailabilityQuery struct {
	RestaurantID uint64
	Date         string
	Time         string
	Guests       uint32
}

// AvailabilityResult is the answer to an AvailabilityQuery.  AvailableTables
// never goes below zero.
type AvailabilityResult struct {
	Available       bool   `json:"available"`
	AvailableTables uint32 `json:"availableTables"`
}

// BookingRequest is a reservation with optional pre-ordered items.
type BookingRequest struct {
	RestaurantID    uint64
	UserName        string
	UserEmail       string
	BookingDate     string
	BookingTime     string
	Guests          uint32
	SpecialRequests string
	OrderItems      []OrderItemRequest
}

// OrderItemRequest pre-orders Quantity units of a menu item.
type OrderItemRequest struct {
	MenuItemID      uint64
	Quantity        uint32
	SpecialRequests string
}

// BookingResult is returned once a booking has been committed.
type BookingResult struct {
	Success   bool   `json:"success"`
	BookingID uint64 `json:"bookingId"`
	Message   string `json:"message"`
}

const (
	msgBookingConfirmed      = "Booking confirmed"
	msgBookingOrderConfirmed = "Booking and order confirmed"
)
