package translate

import (
	"context"
	"time"
)

// Policy is a small reusable retry primitive: a bounded number of attempts
// with a linearly growing backoff, applied uniformly to every backend call.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// Do runs fn until it succeeds or the attempts are exhausted, returning the
// last error. The backoff honors context cancellation.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay * time.Duration(attempt)):
		}
	}
	return lastErr
}
