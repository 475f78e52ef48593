// Package repository contains data access logic separated from HTTP handlers.
// This file holds the restaurant and menu queries.  Restaurants and their
// menus are read-only once seeded, so only lookups are provided here.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/model"
)

// RestaurantRepo encapsulates all database queries related to restaurants
// and their menu items.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo constructs a RestaurantRepo with the provided DB handle.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo {
	return &RestaurantRepo{db: db}
}

const restaurantColumns = `id, name, COALESCE(cuisine, ''), tables, opening_time, closing_time`

// ListAll returns every restaurant in insertion order.  An empty slice is
// returned when the table is empty.
func (r *RestaurantRepo) ListAll(ctx context.Context) ([]model.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Restaurant, 0)
	for rows.Next() {
		var rest model.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Cuisine, &rest.Tables, &rest.OpeningTime, &rest.ClosingTime); err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID retrieves a restaurant by its ID.  It returns
// ErrRestaurantNotFound when there is no matching row.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
	return getRestaurant(ctx, r.db, id)
}

// GetByIDTx is GetByID executed inside the caller's transaction.
func (r *RestaurantRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Restaurant, error) {
	return getRestaurant(ctx, tx, id)
}

func getRestaurant(ctx context.Context, q queryer, id uint64) (*model.Restaurant, error) {
	var rest model.Restaurant
	err := q.QueryRowContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = ?`, id).
		Scan(&rest.ID, &rest.Name, &rest.Cuisine, &rest.Tables, &rest.OpeningTime, &rest.ClosingTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &rest, nil
}

// ListMenu returns the menu items of a restaurant in insertion order.  A
// restaurant without a menu yields an empty slice.
func (r *RestaurantRepo) ListMenu(ctx context.Context, restaurantID uint64) ([]model.MenuItem, error) {
	const q = `SELECT id, restaurant_id, name, COALESCE(description, ''), price, COALESCE(category, '')
	           FROM menu_items
	           WHERE restaurant_id = ?
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.MenuItem, 0)
	for rows.Next() {
		var it model.MenuItem
		if err := rows.Scan(&it.ID, &it.RestaurantID, &it.Name, &it.Description, &it.Price, &it.Category); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FilterMenuItemsTx returns the subset of ids that are menu items of the
// given restaurant.  The lookup runs inside the provided transaction so the
// result is consistent with the booking being written.  An empty input
// returns an empty set without querying.
func (r *RestaurantRepo) FilterMenuItemsTx(ctx context.Context, tx *sql.Tx, restaurantID uint64, ids []uint64) (map[uint64]struct{}, error) {
	found := make(map[uint64]struct{}, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	query := `SELECT id FROM menu_items WHERE restaurant_id = ? AND id IN (`
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, restaurantID)
	for i, id := range ids {
		if i > 0 {
			query += ","
		}
		query += "?"
		args = append(args, id)
	}
	query += ")"
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return found, nil
}
