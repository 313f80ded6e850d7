package provider

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Default rate limits per provider (requests per second).
var defaultRateLimits = map[ProviderName]rate.Limit{
	NameWikipedia: 5,
	NameWikidata:  5,
}

// RateLimiterMap holds one rate.Limiter per provider, created once at startup.
type RateLimiterMap struct {
	mu       sync.RWMutex
	limiters map[ProviderName]*rate.Limiter
}

// NewRateLimiterMap creates all provider rate limiters with default limits.
func NewRateLimiterMap() *RateLimiterMap {
	return NewRateLimiterMapWithLimits(nil)
}

// NewRateLimiterMapWithLimits creates provider rate limiters, overriding the
// default requests per second for providers present in overrides. A
// non-positive override disables limiting for that provider.
func NewRateLimiterMapWithLimits(overrides map[ProviderName]float64) *RateLimiterMap {
	m := &RateLimiterMap{
		limiters: make(map[ProviderName]*rate.Limiter, len(defaultRateLimits)),
	}
	for name, limit := range defaultRateLimits {
		if rps, ok := overrides[name]; ok {
			if rps <= 0 {
				continue
			}
			limit = rate.Limit(rps)
		}
		m.limiters[name] = rate.NewLimiter(limit, 1)
	}
	return m
}

// Wait blocks until the rate limiter for the given provider allows a request,
// or the context is canceled.
func (m *RateLimiterMap) Wait(ctx context.Context, name ProviderName) error {
	m.mu.RLock()
	limiter, ok := m.limiters[name]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	return limiter.Wait(ctx)
}
