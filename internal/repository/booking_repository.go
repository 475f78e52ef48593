package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/model"
)

// BookingRepo provides persistence for bookings and their order items.
// Writes are only exposed as *Tx methods: a booking and its order items
// must always be created inside one transaction owned by the caller.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying sql.DB so that callers can begin transactions
// spanning the booking, slot and restaurant repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// BookedTables returns the number of tables already taken by non-cancelled
// bookings for the exact (restaurant, date, time) slot.
func (r *BookingRepo) BookedTables(ctx context.Context, restaurantID uint64, date, slotTime string) (uint32, error) {
	return bookedTables(ctx, r.db, bookedTablesQuery, restaurantID, date, slotTime)
}

// BookedTablesTx is BookedTables executed inside the caller's transaction
// as a locking read.  A locking read always sees the latest committed rows,
// whatever snapshot the transaction holds.  Callers hold the slot lock (see
// SlotRepo.LockTx) so that the count stays valid until commit.
func (r *BookingRepo) BookedTablesTx(ctx context.Context, tx *sql.Tx, restaurantID uint64, date, slotTime string) (uint32, error) {
	return bookedTables(ctx, tx, bookedTablesQuery+" LOCK IN SHARE MODE", restaurantID, date, slotTime)
}

const bookedTablesQuery = `SELECT COALESCE(SUM(tables_used), 0)
	FROM bookings
	WHERE restaurant_id = ? AND booking_date = ? AND booking_time = ? AND status <> 'cancelled'`

func bookedTables(ctx context.Context, q queryer, query string, restaurantID uint64, date, slotTime string) (uint32, error) {
	var n uint32
	if err := q.QueryRowContext(ctx, query, restaurantID, date, slotTime).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CreateTx inserts a new booking within the scope of an existing
// transaction.  It populates the generated ID, status and created_at on
// the provided record.  The caller must commit or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (restaurant_id, user_name, user_email, booking_date, booking_time, guests, special_requests, tables_used)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.RestaurantID, b.UserName, b.UserEmail, b.BookingDate, b.BookingTime, b.Guests, b.SpecialRequests, b.TablesUsed)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back DB defaults (status, created_at).
	const sel = `SELECT status, created_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.Status, &b.CreatedAt)
}

// CreateOrderItemsBulkTx inserts multiple order_items rows in a single
// statement.  Every item must carry the booking ID it belongs to.  Passing
// an empty slice has no effect and returns nil.
func (r *BookingRepo) CreateOrderItemsBulkTx(ctx context.Context, tx *sql.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO order_items (booking_id, menu_item_id, quantity, special_requests) VALUES `
	args := make([]interface{}, 0, len(items)*4)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, it.BookingID, it.MenuItemID, it.Quantity, it.SpecialRequests)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// GetDetail returns a booking joined with its restaurant's name and all of
// its order items joined with the menu item name and price.  It returns
// ErrBookingNotFound when the booking does not exist.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*model.BookingDetail, error) {
	const q = `SELECT b.id, b.restaurant_id, b.user_name, b.user_email, b.booking_date, b.booking_time,
	                  b.guests, b.special_requests, b.status, b.tables_used, b.created_at, r.name
	           FROM bookings b
	           JOIN restaurants r ON r.id = b.restaurant_id
	           WHERE b.id = ?`
	var det model.BookingDetail
	var special sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&det.ID, &det.RestaurantID, &det.UserName, &det.UserEmail, &det.BookingDate, &det.BookingTime,
		&det.Guests, &special, &det.Status, &det.TablesUsed, &det.CreatedAt, &det.RestaurantName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if special.Valid {
		s := special.String
		det.SpecialRequests = &s
	}

	const itemsQ = `SELECT oi.id, oi.booking_id, oi.menu_item_id, oi.quantity, oi.special_requests,
	                       mi.name, mi.price
	                FROM order_items oi
	                JOIN menu_items mi ON mi.id = oi.menu_item_id
	                WHERE oi.booking_id = ?
	                ORDER BY oi.id`
	rows, err := r.db.QueryContext(ctx, itemsQ, det.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	det.OrderItems = make([]model.OrderItemDetail, 0)
	for rows.Next() {
		var it model.OrderItemDetail
		var itemSpecial sql.NullString
		if err := rows.Scan(&it.ID, &it.BookingID, &it.MenuItemID, &it.Quantity, &itemSpecial, &it.ItemName, &it.ItemPrice); err != nil {
			return nil, err
		}
		if itemSpecial.Valid {
			s := itemSpecial.String
			it.SpecialRequests = &s
		}
		det.OrderItems = append(det.OrderItems, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &det, nil
}
