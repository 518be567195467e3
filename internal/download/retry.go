package download

import (
	"context"
	"time"
)

// RetryPolicy bounds how often a single asset download is attempted and
// how long to wait between attempts. The wait is fixed rather than
// exponential: the archive CDN's transient failures clear quickly, and a
// predictable total worst-case time per asset matters more here than
// backoff sophistication.
type RetryPolicy struct {
	// MaxAttempts is the number of network attempts per asset. Minimum 1.
	MaxAttempts int

	// Wait is the pause between consecutive attempts.
	Wait time.Duration

	// sleep is injectable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryPolicy creates a RetryPolicy, clamping maxAttempts to at
// least one attempt.
func NewRetryPolicy(maxAttempts int, wait time.Duration) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if wait < 0 {
		wait = 0
	}
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Wait:        wait,
		sleep:       sleepContext,
	}
}

// pause waits for the retry interval, aborting early on context
// cancellation.
func (p RetryPolicy) pause(ctx context.Context) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}
	return sleep(ctx, p.Wait)
}

// sleepContext sleeps for d unless the context is cancelled first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d == 0 {
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
