package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
)

const (
	mysqlDeadlock        = 1213
	mysqlLockWaitTimeout = 1205
)

// retryable reports whether err is a transient lock conflict after which
// the whole transaction may be replayed.
func retryable(err error) bool {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return false
	}
	return me.Number == mysqlDeadlock || me.Number == mysqlLockWaitTimeout
}

// withRetry runs fn until it succeeds, fails with a non-retryable error or
// has been retried maxRetries times.  Backoff grows linearly from base.
func withRetry(ctx context.Context, maxRetries int, base time.Duration, fn func(attempt int) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn(attempt)
		if err == nil || !retryable(err) || attempt >= maxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt+1) * base):
		}
	}
}
