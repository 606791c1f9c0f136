package jobs

import (
	"context"
	"time"

	"agentbot/internal/logging"
	"agentbot/internal/metrics"
	"agentbot/internal/xclient"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the real SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// backoff is 2^attempt seconds: 2s after the first failure, 4s after the second.
func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

// withRetry calls fn up to maxAttempts times, sleeping between attempts while
// the error is retryable. It returns the number of attempts made.
func withRetry(ctx context.Context, endpoint string, maxAttempts int, sleep SleepFunc, fn func() error) (int, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return attempt, nil
		}
		if !xclient.IsRetryable(err) || attempt == maxAttempts {
			return attempt, err
		}
		wait := backoff(attempt)
		metrics.IncAPIRetry(endpoint)
		logging.Warn("api_retry", map[string]any{"endpoint": endpoint, "attempt": attempt, "backoff": wait.String(), "error": err})
		if serr := sleep(ctx, wait); serr != nil {
			return attempt, serr
		}
	}
	return maxAttempts, err
}
