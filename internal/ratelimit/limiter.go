// Package ratelimit provides per-model token buckets for LLM calls and
// per-session generation budgets.
package ratelimit

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"
)

// ModelLimiter rate-limits LLM calls per model using token buckets.
// Limiters are created on first use with the default rate.
type ModelLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewModelLimiter creates a limiter allowing rps calls per second per model
// with the given burst. A burst below 1 is raised to 1.
func NewModelLimiter(rps float64, burst int) *ModelLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ModelLimiter{limiters: make(map[string]*rate.Limiter), rps: rps, burst: burst}
}

func (ml *ModelLimiter) limiter(model string) *rate.Limiter {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	l, ok := ml.limiters[model]
	if !ok {
		l = rate.NewLimiter(rate.Limit(ml.rps), ml.burst)
		ml.limiters[model] = l
	}
	return l
}

// Wait blocks until a token is available for model, or ctx is cancelled.
// A nil limiter or a non-positive rate never blocks.
func (ml *ModelLimiter) Wait(ctx context.Context, model string) error {
	if ml == nil || ml.rps <= 0 {
		return nil
	}
	if err := ml.limiter(model).Wait(ctx); err != nil {
		return fmt.Errorf("rate limit %s: %w", model, err)
	}
	return nil
}
