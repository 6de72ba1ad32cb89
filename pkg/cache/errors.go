package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")

	// ErrUnavailable is returned when a remote backend cannot be reached.
	ErrUnavailable = errors.New("cache backend unavailable")
)

// backoff retries transient failures, doubling the delay after each try.
type backoff struct {
	attempts int
	delay    time.Duration
}

var defaultBackoff = backoff{attempts: 3, delay: 200 * time.Millisecond}

// do calls fn until it succeeds, fails with an error transient rejects, or
// the attempts run out. Exhaustion is reported as ErrUnavailable wrapping the
// last failure.
func (b backoff) do(ctx context.Context, transient func(error) bool, fn func() error) error {
	delay := b.delay
	var err error
	for i := 0; i < b.attempts; i++ {
		if err = fn(); err == nil || !transient(err) {
			return err
		}
		if i == b.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrUnavailable, b.attempts, err)
}
