package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, Limit: 10, Window: time.Minute, Burst: 3})

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("client-a")
		assert.True(t, allowed, "request %d within burst", i)
	}

	allowed, info := limiter.Allow("client-a")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, Limit: 10, Window: time.Minute, Burst: 1})

	allowed, _ := limiter.Allow("client-a")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("client-a")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("client-b")
	assert.True(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("client-a")
		require.True(t, allowed)
	}
}

func TestLimiter_NilConfigUsesDefaults(t *testing.T) {
	limiter := NewLimiter(nil)

	allowed, info := limiter.Allow("client-a")
	assert.True(t, allowed)
	assert.Equal(t, DefaultConfig().Limit, info.Limit)
}
