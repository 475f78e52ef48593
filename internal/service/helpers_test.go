package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/logger"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/queue"
	"github.com/Pradeepkumar2611/hotel-tablebooking/internal/repository"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, sm, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, sm
}

func newBookingService(t *testing.T, db *sql.DB, policy CapacityPolicy, pub queue.Publisher) *BookingService {
	t.Helper()
	svc := NewBookingService(db,
		repository.NewRestaurantRepo(db),
		repository.NewBookingRepo(db),
		repository.NewSlotRepo(db),
		policy, pub, logger.Discard(),
		BookingOptions{Timeout: time.Second, MaxRetries: 2, RetryBackoff: time.Millisecond})
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

var restaurantCols = []string{"id", "name", "cuisine", "tables", "opening_time", "closing_time"}

func burgerBarn() *sqlmock.Rows {
	return sqlmock.NewRows(restaurantCols).AddRow(3, "Burger Barn", "American", 12, "10:00", "22:00")
}

const (
	selRestaurant = `SELECT id, name, COALESCE\(cuisine, ''\), tables, opening_time, closing_time FROM restaurants WHERE id = \?`
	insSlot       = `INSERT INTO booking_slots`
	lockSlot      = `SELECT restaurant_id FROM booking_slots .* FOR UPDATE`
	sumBooked     = `SELECT COALESCE\(SUM\(tables_used\), 0\)\s+FROM bookings`
	sumBookedLock = sumBooked + `.* LOCK IN SHARE MODE$`
	selMenuIDs    = `SELECT id FROM menu_items WHERE restaurant_id = \? AND id IN \(`
	insBooking    = `INSERT INTO bookings`
	selDefaults   = `SELECT status, created_at FROM bookings WHERE id = \?`
	insOrderItems = `INSERT INTO order_items`
)

// expectSlotLocked registers the statements that run up to and including the
// capacity recount for Burger Barn on 2025-06-01 19:00.  The recount is a
// locking read issued after the slot lock.
func expectSlotLocked(sm sqlmock.Sqlmock, booked int) {
	sm.ExpectBegin()
	sm.ExpectQuery(selRestaurant).WithArgs(3).WillReturnRows(burgerBarn())
	sm.ExpectExec(insSlot).WithArgs(3, "2025-06-01", "19:00").WillReturnResult(sqlmock.NewResult(0, 1))
	sm.ExpectQuery(lockSlot).WithArgs(3, "2025-06-01", "19:00").
		WillReturnRows(sqlmock.NewRows([]string{"restaurant_id"}).AddRow(3))
	sm.ExpectQuery(sumBookedLock).WithArgs(3, "2025-06-01", "19:00").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(booked))
}
