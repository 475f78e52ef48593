// Package queue carries booking events over the message broker.
package queue

import (
	"fmt"
	"strings"
)

// BookingConfirmedQueue is the queue (RabbitMQ) and default topic (Kafka)
// that booking confirmations are published to.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published after a booking transaction commits.
// It carries enough to log or notify without querying the database.
type BookingConfirmedEvent struct {
	BookingID      uint64           `json:"booking_id"`
	RestaurantID   uint64           `json:"restaurant_id"`
	RestaurantName string           `json:"restaurant_name"`
	UserName       string           `json:"user_name"`
	UserEmail      string           `json:"user_email"`
	BookingDate    string           `json:"booking_date"`
	BookingTime    string           `json:"booking_time"`
	Guests         uint32           `json:"guests"`
	TablesUsed     uint32           `json:"tables_used"`
	OrderItems     []EventOrderItem `json:"order_items"`
	ConfirmedAt    string           `json:"confirmed_at"`
}

// EventOrderItem is a pre-ordered menu item inside a BookingConfirmedEvent.
type EventOrderItem struct {
	MenuItemID uint64 `json:"menu_item_id"`
	Quantity   uint32 `json:"quantity"`
}

// LogLine renders ev as a single human-readable line for logs/booking.log.
func (ev BookingConfirmedEvent) LogLine() string {
	items := make([]string, 0, len(ev.OrderItems))
	for _, it := range ev.OrderItems {
		items = append(items, fmt.Sprintf("%dx%d", it.MenuItemID, it.Quantity))
	}
	return fmt.Sprintf("[%s] Booking confirmed | booking_id=%d | restaurant_id=%d | restaurant=%q | name=%q | email=%q | slot=%s %s | guests=%d | tables=%d | items=[%s]\n",
		ev.ConfirmedAt, ev.BookingID, ev.RestaurantID, ev.RestaurantName, ev.UserName, ev.UserEmail,
		ev.BookingDate, ev.BookingTime, ev.Guests, ev.TablesUsed, strings.Join(items, ","))
}
