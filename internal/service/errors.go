// Package service holds the booking domain logic: slot availability, the
// transactional booking write path and read-only lookups.  Every failure
// leaves the package as one of the error types below so the HTTP layer can
// map it without looking at driver errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a malformed or incomplete request.  Nothing has
// been written when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports a referenced restaurant or booking that does not
// exist.
type NotFoundError struct {
	Resource string
	ID       uint64
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "Not found"
	}
	return strings.ToUpper(e.Resource[:1]) + e.Resource[1:] + " not found"
}

// ErrCapacityExceeded is returned when the requested slot has no tables left
// for the booking.  The transaction has been rolled back.
var ErrCapacityExceeded = errors.New("no tables available for the requested time")

// ErrUnavailable is returned when the store did not answer within the
// request deadline.
var ErrUnavailable = errors.New("service temporarily unavailable")

// StoreError wraps a failure of the persistent store.  Op names the step
// that failed and is safe to log; Err is not meant for clients.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func missing(field string) error {
	return ValidationError{Field: field, Message: "Missing required fields"}
}

func invalid(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

// onField returns err re-targeted at field when it is a ValidationError.
func onField(err error, field string) error {
	var ve ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	ve.Field = field
	return ve
}

// storeErr classifies err returned by a store operation.  Errors that
// already belong to the taxonomy pass through unchanged.  A context
// deadline becomes ErrUnavailable; everything else becomes a StoreError.
func storeErr(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	var ve ValidationError
	var nf NotFoundError
	var se *StoreError
	switch {
	case errors.As(err, &ve), errors.As(err, &nf), errors.As(err, &se),
		errors.Is(err, ErrCapacityExceeded), errors.Is(err, ErrUnavailable):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return &StoreError{Op: op, Err: err}
}
