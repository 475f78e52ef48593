package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type seedMenuItem struct {
	name        string
	description string
	price       decimal.Decimal
	category    string
}

type seedRestaurant struct {
	name    string
	cuisine string
	tables  int
	opening string
	closing string
	menu    []seedMenuItem
}

var sampleRestaurants = []seedRestaurant{
	{
		name: "Tasty Bites", cuisine: "Indian", tables: 10, opening: "11:00", closing: "23:00",
		menu: []seedMenuItem{
			{"Butter Chicken", "Creamy tomato-based curry with tender chicken", decimal.RequireFromString("14.99"), "Main Course"},
			{"Garlic Naan", "Soft bread with garlic butter", decimal.RequireFromString("3.99"), "Bread"},
		},
	},
	{
		name: "Pasta Palace", cuisine: "Italian", tables: 8, opening: "12:00", closing: "22:00",
		menu: []seedMenuItem{
			{"Spaghetti Carbonara", "Classic pasta with creamy egg sauce", decimal.RequireFromString("12.99"), "Main Course"},
			{"Tiramisu", "Coffee-flavored Italian dessert", decimal.RequireFromString("7.99"), "Dessert"},
		},
	},
	{
		name: "Burger Barn", cuisine: "American", tables: 12, opening: "10:00", closing: "22:00",
		menu: []seedMenuItem{
			{"Classic Burger", "Beef patty with lettuce and special sauce", decimal.RequireFromString("9.99"), "Main Course"},
			{"Chocolate Shake", "Creamy chocolate milkshake", decimal.RequireFromString("5.99"), "Drink"},
		},
	},
}

// Seed inserts the sample restaurants and their menus when the restaurants
// table is empty.  It reports whether anything was inserted.  A failure
// leaves the database untouched.
func Seed(ctx context.Context, db *sql.DB) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count); err != nil {
		return false, fmt.Errorf("count restaurants: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, r := range sampleRestaurants {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO restaurants (name, cuisine, tables, opening_time, closing_time) VALUES (?, ?, ?, ?, ?)`,
			r.name, r.cuisine, r.tables, r.opening, r.closing)
		if err != nil {
			return false, fmt.Errorf("seed restaurant %q: %w", r.name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return false, err
		}
		for _, m := range r.menu {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO menu_items (restaurant_id, name, description, price, category) VALUES (?, ?, ?, ?, ?)`,
				id, m.name, m.description, m.price, m.category)
			if err != nil {
				return false, fmt.Errorf("seed menu item %q: %w", m.name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return true, nil
}
