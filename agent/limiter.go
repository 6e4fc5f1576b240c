package agent

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// searchLimiter spaces provider calls a fixed interval apart, measured from
// call initiation to call initiation. Once Wait returns, the slot is spent:
// a slow provider response does not extend the next caller's wait. Shared by
// every request the agent handles; rate.Limiter's internal lock serializes
// concurrent waiters.
type searchLimiter struct {
	limiter *rate.Limiter
}

func newSearchLimiter(interval time.Duration) *searchLimiter {
	if interval <= 0 {
		return &searchLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &searchLimiter{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next provider call may start, or until ctx is done.
func (l *searchLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
