// Package resilience retries transient failures of remote registry
// downloads with jittered exponential backoff.
package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// Backoff controls Retry.
type Backoff struct {
	// Attempts is the total number of calls, the first one included.
	// Default 3.
	Attempts int
	// Initial is the delay before the first retry. Default 500ms.
	Initial time.Duration
	// Max caps each delay. Default 30s.
	Max time.Duration
	// Multiplier scales the delay after each attempt. Default 2.
	Multiplier float64
	// Jitter spreads each delay by up to this fraction either way.
	Jitter float64
	// OnRetry, when set, is called before each retry sleep.
	OnRetry func(attempt int, err error)
}

func (b Backoff) withDefaults() Backoff {
	if b.Attempts <= 0 {
		b.Attempts = 3
	}
	if b.Initial <= 0 {
		b.Initial = 500 * time.Millisecond
	}
	if b.Max <= 0 {
		b.Max = 30 * time.Second
	}
	if b.Multiplier <= 0 {
		b.Multiplier = 2
	}
	b.Jitter = min(max(b.Jitter, 0), 1)
	return b
}

// Delay returns the sleep before retry number attempt+1.
func (b Backoff) Delay(attempt int) time.Duration {
	b = b.withDefaults()
	d := min(float64(b.Initial)*math.Pow(b.Multiplier, float64(attempt)), float64(b.Max))
	if b.Jitter > 0 {
		d += (rand.Float64()*2 - 1) * d * b.Jitter
	}
	return time.Duration(max(d, 0))
}

// Retry calls fn until it succeeds, returns an error IsTransient rejects,
// ctx ends, or the attempts run out. The last error is returned as is.
func Retry[T any](ctx context.Context, b Backoff, fn func(ctx context.Context) (T, error)) (T, error) {
	b = b.withDefaults()

	var zero T
	var lastErr error
	for attempt := range b.Attempts {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil || !IsTransient(err) || attempt == b.Attempts-1 {
			break
		}
		if b.OnRetry != nil {
			b.OnRetry(attempt+1, err)
		}

		timer := time.NewTimer(b.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}
	return zero, lastErr
}
