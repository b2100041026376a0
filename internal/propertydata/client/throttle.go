package client

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval spaces upstream dispatches at most 10 per second.
const DefaultMinInterval = 100 * time.Millisecond

// Throttle enforces a minimum spacing between upstream dispatches. It is a
// leaky bucket of one: no burst beyond the interval itself, FIFO by call
// order, shared process-wide through the single propertydata module
// instance. It can delay but never fail, except when the caller's context
// is cancelled while waiting.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle with the given minimum interval between
// dispatches. Non-positive intervals fall back to DefaultMinInterval.
func NewThrottle(minInterval time.Duration) *Throttle {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Acquire blocks until at least the configured interval has elapsed since
// the previous acquisition. It must be called exactly once per outbound
// request, immediately before dispatch. The slot is consumed even if the
// request that follows fails.
func (t *Throttle) Acquire(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}
