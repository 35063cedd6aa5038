package ratelimit

import (
	"context"
	"time"
)

// Store decides whether a request identified by key may proceed.
// Implementations own their expiry; callers only see the decision.
type Store interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

// Limit defines the rate limit rule: Requests per Window
type Limit struct {
	Requests int
	Window   time.Duration
}

// Result represents the result of a rate limit check
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

func (l Limit) normalized() Limit {
	if l.Requests <= 0 {
		l.Requests = 100
	}
	if l.Window <= 0 {
		l.Window = time.Minute
	}
	return l
}
