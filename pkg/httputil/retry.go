package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a transient failure, such as a timeout or a 5xx
// response, that a [Backoff] should try again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped in a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Backoff is an exponential retry policy.
type Backoff struct {
	// Attempts is the total number of tries. Values below one mean one.
	Attempts int

	// Delay is the wait before the second try. It doubles after each
	// failure.
	Delay time.Duration

	// MaxDelay caps the wait. Zero leaves it uncapped.
	MaxDelay time.Duration
}

// Do runs fn until it succeeds, returns an error that is not retryable, or
// runs out of attempts. It returns the last error, or ctx.Err() if ctx ends
// while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var lastErr error

	for i := range attempts {
		lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if b.MaxDelay > 0 && delay > b.MaxDelay {
			delay = b.MaxDelay
		}
	}
	return lastErr
}

// Retry runs fn with Backoff{Attempts: attempts, Delay: delay}.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	return Backoff{Attempts: attempts, Delay: delay}.Do(ctx, fn)
}
