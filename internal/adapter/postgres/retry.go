package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

// readRetryDelay is the pause before the single retry of a failed read.
var readRetryDelay = 50 * time.Millisecond

// RetryRead runs an idempotent read and retries it once on a transient
// storage error. Domain errors (not found, validation, ...) and context
// errors are returned immediately. Inside a transaction the read is never
// retried: the transaction is already aborted by the first failure.
// Mutations must not use RetryRead.
func RetryRead[T any](ctx context.Context, read func(ctx context.Context) (T, error)) (T, error) {
	v, err := read(ctx)
	if err == nil || !retryable(ctx, err) {
		return v, err
	}

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-time.After(readRetryDelay):
	}

	return read(ctx)
}

func retryable(ctx context.Context, err error) bool {
	if InTx(ctx) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	for _, permanent := range []error{
		domain.ErrNotFound, domain.ErrAlreadyExists, domain.ErrValidation,
		domain.ErrConflict, domain.ErrForbidden, domain.ErrUnauthorized,
	} {
		if errors.Is(err, permanent) {
			return false
		}
	}
	return true
}
