package rest

import (
	"context"
	"sync"
	"time"
)

// RateLimiter implements a token bucket rate limiter. The trading API
// enforces per-key request quotas; the client throttles locally so that
// bursts of cost-basis history fetches do not trip the server-side limit.
type RateLimiter struct {
	rate  float64 // tokens per second
	burst int     // maximum number of tokens in bucket

	mu     sync.Mutex
	tokens float64   // current number of tokens
	last   time.Time // last time tokens were added
}

// NewRateLimiter creates a new token bucket rate limiter
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		rate:   requestsPerSecond,
		burst:  burst,
		tokens: float64(burst), // start with full bucket
		last:   time.Now(),
	}
}

// Rate returns the configured rate (tokens per second)
func (rl *RateLimiter) Rate() float64 {
	return rl.rate
}

// Burst returns the configured burst capacity
func (rl *RateLimiter) Burst() int {
	return rl.burst
}

// TryAcquire attempts to acquire a token without blocking
func (rl *RateLimiter) TryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()

	if rl.tokens >= 1.0 {
		rl.tokens -= 1.0
		return true
	}

	return false
}

// Wait blocks until a token is available or the context is cancelled
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if rl.TryAcquire() {
			return nil
		}

		// A non-positive rate can never refill an empty bucket
		if rl.rate <= 0 {
			return context.DeadlineExceeded
		}

		interval := time.Duration((1.0 / rl.rate) * float64(time.Second))
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// refill adds tokens to the bucket based on elapsed time.
// Must be called with the mutex held.
func (rl *RateLimiter) refill() {
	now := time.Now()
	elapsed := now.Sub(rl.last).Seconds()

	rl.tokens += elapsed * rl.rate
	if rl.tokens > float64(rl.burst) {
		rl.tokens = float64(rl.burst)
	}

	rl.last = now
}
