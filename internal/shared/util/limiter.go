package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces outbound calls (document generation requests) with a token bucket.
// A nil *Limiter never blocks.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter creates a token bucket limiter.
// r: tokens per second; r <= 0 disables limiting.
// b: burst size.
func NewLimiter(r float64, b int) *Limiter {
	if r <= 0 {
		return &Limiter{inner: rate.NewLimiter(rate.Inf, 0)}
	}
	if b < 1 {
		b = 1
	}
	return &Limiter{
		inner: rate.NewLimiter(rate.Limit(r), b),
	}
}

// Allow reports whether n events may happen now.
func (l *Limiter) Allow(n int) bool {
	if l == nil || l.inner == nil {
		return true
	}
	return l.inner.AllowN(time.Now(), n)
}

// Wait blocks until one token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.inner == nil {
		return ctx.Err()
	}
	return l.inner.Wait(ctx)
}
