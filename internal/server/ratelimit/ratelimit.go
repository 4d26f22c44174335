// Package ratelimit provides a token bucket rate limiter for the HTTP API.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a single client's token bucket. Tokens refill at a steady rate up
// to the burst capacity.
type bucket struct {
	capacity   int
	refillRate float64
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newBucket(capacity int, refillRate float64) *bucket {
	return &bucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (b *bucket) allow() (bool, int, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens = min(float64(b.capacity), b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now

	allowed := b.tokens >= 1.0
	if allowed {
		b.tokens -= 1.0
	}

	resetTime := now
	if b.tokens < float64(b.capacity) {
		secondsUntilFull := (float64(b.capacity) - b.tokens) / b.refillRate
		resetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return allowed, int(b.tokens), resetTime
}

// Info describes the rate limit state returned with each decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds the limiter settings. Limit requests are allowed per Window,
// with Burst immediate requests on a cold bucket.
type Config struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Burst   int
}

// DefaultConfig rate-limits the recommendation endpoint: ranking a corpus
// fans out into model calls, so the budget is deliberately small.
func DefaultConfig() *Config {
	return &Config{
		Enabled: true,
		Limit:   30,
		Window:  time.Minute,
		Burst:   5,
	}
}

// Limiter tracks one token bucket per client.
type Limiter struct {
	config  *Config
	buckets map[string]*bucket
	mu      sync.Mutex
}

// NewLimiter creates a limiter with the given configuration. A nil config
// uses DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
	}
}

// Allow reports whether a request from the given client may proceed.
func (l *Limiter) Allow(clientID string) (bool, Info) {
	if !l.config.Enabled || l.config.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	l.mu.Lock()
	b, ok := l.buckets[clientID]
	if !ok {
		burst := l.config.Burst
		if burst <= 0 {
			burst = l.config.Limit
		}
		b = newBucket(burst, float64(l.config.Limit)/l.config.Window.Seconds())
		l.buckets[clientID] = b
	}
	l.mu.Unlock()

	allowed, remaining, resetTime := b.allow()

	var retryAfter time.Duration
	if !allowed {
		retryAfter = max(time.Until(resetTime), 0)
	}
	return allowed, Info{
		Allowed:    allowed,
		Limit:      l.config.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}
