package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are rendered as JSON numbers (14.99) rather than strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Restaurant is a venue that accepts table bookings.  Restaurants are
// seeded once at startup and never modified afterwards.  This struct
// corresponds to a row in the `restaurants` table.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – display name.
//	Cuisine     – free-text cuisine label (e.g. "Italian").
//	Tables      – number of tables; the capacity of every slot.
//	OpeningTime – local time of day the restaurant opens (HH:MM).
//	ClosingTime – local time of day the restaurant closes (HH:MM).
type Restaurant struct {
	ID          uint64 `json:"id"`           // restaurants.id
	Name        string `json:"name"`         // restaurants.name
	Cuisine     string `json:"cuisine"`      // restaurants.cuisine
	Tables      uint32 `json:"tables"`       // restaurants.tables
	OpeningTime string `json:"opening_time"` // restaurants.opening_time
	ClosingTime string `json:"closing_time"` // restaurants.closing_time
}

// MenuItem is a dish offered by a restaurant.  Category is used only to
// group items for display.
type MenuItem struct {
	ID           uint64          `json:"id"`            // menu_items.id
	RestaurantID uint64          `json:"restaurant_id"` // menu_items.restaurant_id
	Name         string          `json:"name"`          // menu_items.name
	Description  string          `json:"description"`   // menu_items.description
	Price        decimal.Decimal `json:"price"`         // menu_items.price
	Category     string          `json:"category"`      // menu_items.category
}

// RestaurantDetail is a restaurant together with its menu.  It marshals
// flat: the restaurant's own fields followed by a "menu" array.
type RestaurantDetail struct {
	Restaurant
	Menu []MenuItem `json:"menu"`
}

// MarshalJSON guarantees that an empty menu is rendered as [] instead of null.
func (d RestaurantDetail) MarshalJSON() ([]byte, error) {
	type flat RestaurantDetail
	out := flat(d)
	if out.Menu == nil {
		out.Menu = []MenuItem{}
	}
	return json.Marshal(out)
}
