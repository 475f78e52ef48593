package repository

import (
	"context"
	"database/sql"
)

// SlotRepo manages the booking_slots table.  A slot row exists for every
// (restaurant, date, time) that has ever been booked and serves as the lock
// target that serialises concurrent bookings of the same slot.  Bookings of
// different slots never contend.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo returns a new SlotRepo bound to the provided database.
func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

// LockTx acquires an exclusive row lock on the slot inside tx, creating the
// slot row first when it does not exist yet.  The lock is held until the
// transaction commits or rolls back.  Two transactions racing to create the
// same slot may deadlock; MySQL aborts one of them with error 1213 and the
// caller is expected to retry.
func (r *SlotRepo) LockTx(ctx context.Context, tx *sql.Tx, restaurantID uint64, date, slotTime string) error {
	const upsert = `INSERT INTO booking_slots (restaurant_id, slot_date, slot_time)
	                VALUES (?, ?, ?)
	                ON DUPLICATE KEY UPDATE restaurant_id = restaurant_id`
	if _, err := tx.ExecContext(ctx, upsert, restaurantID, date, slotTime); err != nil {
		return err
	}
	const lock = `SELECT restaurant_id FROM booking_slots
	              WHERE restaurant_id = ? AND slot_date = ? AND slot_time = ?
	              FOR UPDATE`
	var id uint64
	return tx.QueryRowContext(ctx, lock, restaurantID, date, slotTime).Scan(&id)
}
