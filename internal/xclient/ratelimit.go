package xclient

import (
	"golang.org/x/time/rate"
)

const (
	defaultRPS   = 1.0
	defaultBurst = 5
)

// newLimiter creates the client-side token bucket; non-positive values fall
// back to defaults.
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
