// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// service package to distinguish a missing row from a failing store
// without inspecting driver errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrRestaurantNotFound is returned when a restaurant lookup matches no row.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// queryer is satisfied by both *sql.DB and *sql.Tx so that read helpers can
// run either standalone or inside a caller's transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
