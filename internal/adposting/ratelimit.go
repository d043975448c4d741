package adposting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/adposting/internal/metrics"
)

// ErrDailyLimitReached is returned when the daily request quota is exhausted.
var ErrDailyLimitReached = errors.New("daily request quota reached")

// RateLimiter throttles outgoing API requests with a token bucket and caps
// them with a rolling 24-hour quota. It never retries; it only delays or
// refuses a request before it is sent.
type RateLimiter struct {
	limiter  *rate.Limiter
	used     atomic.Int64
	maxDaily int64

	mu      sync.Mutex
	resetAt time.Time
	nowFunc func() time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a limiter allowing perSecond requests with the given
// burst, and at most maxDaily requests per window. A maxDaily of zero or less
// disables the quota.
func NewRateLimiter(perSecond float64, burst int, maxDaily int64, opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(24 * time.Hour)
	return r
}

// Wait blocks until a request may be sent or ctx is done. Quota is reserved
// before waiting so concurrent callers cannot overshoot it, and handed back
// if the wait fails.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.rollWindow()

	used, ok := r.reserve()
	if !ok {
		metrics.RateLimitRejectionsTotal.Inc()
		return fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, used, r.maxDaily)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		r.used.Add(-1)
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	metrics.QuotaUsed.Set(float64(used))
	return nil
}

// reserve claims one request from the quota. It returns the usage after the
// claim, or the current usage and false when the quota is spent.
func (r *RateLimiter) reserve() (int64, bool) {
	for {
		cur := r.used.Load()
		if r.maxDaily > 0 && cur >= r.maxDaily {
			return cur, false
		}
		if r.used.CompareAndSwap(cur, cur+1) {
			return cur + 1, true
		}
	}
}

// Used returns the number of requests sent in the current window.
func (r *RateLimiter) Used() int64 {
	return r.used.Load()
}

// Remaining returns how many requests are left in the current window.
// It returns -1 when no quota is configured.
func (r *RateLimiter) Remaining() int64 {
	if r.maxDaily <= 0 {
		return -1
	}
	return max(r.maxDaily-r.used.Load(), 0)
}

// ResetAt returns when the current window ends.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetAt
}

func (r *RateLimiter) rollWindow() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.used.Store(0)
		r.resetAt = now.Add(24 * time.Hour)
	}
}
