// Package clock provides context-aware waiting and retry schedules.
package clock

import (
	"context"
	"errors"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff retries an operation up to Attempts times, waiting attempt*Step
// between consecutive tries.
type Backoff struct {
	Attempts int
	Step     time.Duration
	// Sleep defaults to SleepWithContext.
	Sleep func(context.Context, time.Duration) error
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Delay returns the wait after the given failed attempt, counted from 1.
func (b Backoff) Delay(attempt int) time.Duration {
	return time.Duration(attempt) * b.Step
}

// Retry calls fn until it succeeds, returns a Permanent error, the attempts
// run out or ctx ends. The last error of fn is returned unwrapped.
func (b Backoff) Retry(ctx context.Context, fn func(ctx context.Context, attempt int) error) error {
	attempts := max(b.Attempts, 1)
	sleep := b.Sleep
	if sleep == nil {
		sleep = SleepWithContext
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err = fn(ctx, attempt); err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt == attempts {
			break
		}
		if serr := sleep(ctx, b.Delay(attempt)); serr != nil {
			return serr
		}
	}
	return err
}
