package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus enumerates the states a booking can be in.  No endpoint
// changes a booking's status; cancelled bookings only arise from manual
// intervention in the store and are excluded from capacity accounting.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking records a customer's claim on one slot of a restaurant.
//
// Fields:
//
//	ID              – primary key identifier.
//	RestaurantID    – restaurant being booked.
//	UserName        – customer name.
//	UserEmail       – customer email.
//	BookingDate     – calendar date (YYYY-MM-DD).
//	BookingTime     – time of day (HH:MM).
//	Guests          – party size.
//	SpecialRequests – optional free text.
//	Status          – confirmed or cancelled.
//	TablesUsed      – tables consumed under the capacity policy in force
//	                  when the booking was made.
//	CreatedAt       – server-assigned creation timestamp.
type Booking struct {
	ID              uint64        `json:"id"`               // bookings.id
	RestaurantID    uint64        `json:"restaurant_id"`    // bookings.restaurant_id
	UserName        string        `json:"user_name"`        // bookings.user_name
	UserEmail       string        `json:"user_email"`       // bookings.user_email
	BookingDate     string        `json:"booking_date"`     // bookings.booking_date
	BookingTime     string        `json:"booking_time"`     // bookings.booking_time
	Guests          uint32        `json:"guests"`           // bookings.guests
	SpecialRequests *string       `json:"special_requests"` // bookings.special_requests (nullable)
	Status          BookingStatus `json:"status"`           // bookings.status
	TablesUsed      uint32        `json:"tables_used"`      // bookings.tables_used
	CreatedAt       time.Time     `json:"created_at"`       // bookings.created_at
}

// OrderItem is a menu item pre-ordered as part of a booking.
type OrderItem struct {
	ID              uint64  `json:"id"`               // order_items.id
	BookingID       uint64  `json:"booking_id"`       // order_items.booking_id
	MenuItemID      uint64  `json:"menu_item_id"`     // order_items.menu_item_id
	Quantity        uint32  `json:"quantity"`         // order_items.quantity
	SpecialRequests *string `json:"special_requests"` // order_items.special_requests (nullable)
}

// OrderItemDetail is an order item joined with the menu item it refers to.
type OrderItemDetail struct {
	OrderItem
	ItemName  string          `json:"item_name"`
	ItemPrice decimal.Decimal `json:"item_price"`
}

// BookingDetail is a booking joined with its restaurant's name and all of
// its order items.
type BookingDetail struct {
	Booking
	RestaurantName string            `json:"restaurant_name"`
	OrderItems     []OrderItemDetail `json:"orderItems"`
}

// MarshalJSON guarantees that a booking without order items is rendered
// with "orderItems": [] instead of null.
func (d BookingDetail) MarshalJSON() ([]byte, error) {
	type flat BookingDetail
	out := flat(d)
	if out.OrderItems == nil {
		out.OrderItems = []OrderItemDetail{}
	}
	return json.Marshal(out)
}
