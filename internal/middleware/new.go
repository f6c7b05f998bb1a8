package middleware

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"realty-content-engine/pkg/log"
)

// RateLimitConfig bounds how fast one client may hit the generation
// routes. Zero values fall back to the defaults.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

const (
	defaultRequestsPerMinute = 20
	defaultBurst             = 5

	// How long an idle client's limiter stays cached.
	limiterTTL      = 10 * time.Minute
	limiterCacheCap = 4096
)

type Middleware struct {
	l        log.Logger
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func New(l log.Logger, cfg RateLimitConfig) Middleware {
	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	return Middleware{
		l:        l,
		limiters: expirable.NewLRU[string, *rate.Limiter](limiterCacheCap, nil, limiterTTL),
		limit:    rate.Limit(float64(rpm) / 60.0),
		burst:    burst,
	}
}
