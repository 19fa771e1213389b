package ratelimiter

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	ratelimiter "remindbot/internal/core/domain/rate_limiter"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// InMemory is a token bucket per key. A limit of N per interval refills one token
// every interval/N with a burst of N.
type InMemory struct {
	now      func() time.Time
	limiters map[string]*rate.Limiter
	lock     sync.Mutex
}

func NewInMemory(now func() time.Time) *InMemory {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &InMemory{now: now, limiters: make(map[string]*rate.Limiter)}
}

func (r *InMemory) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	if limit.Value == 0 {
		return ratelimiter.NotAllowed()
	}
	if r.getLimiter(key, limit).AllowN(r.now(), 1) {
		return ratelimiter.Allowed()
	}
	return ratelimiter.NotAllowed()
}

func (r *InMemory) getLimiter(key string, limit ratelimiter.Limit) *rate.Limiter {
	r.lock.Lock()
	defer r.lock.Unlock()

	if limiter, ok := r.limiters[key]; ok {
		return limiter
	}
	every := limit.Interval.Duration() / time.Duration(limit.Value)
	limiter := rate.NewLimiter(rate.Every(every), int(limit.Value))
	r.limiters[key] = limiter
	return limiter
}
