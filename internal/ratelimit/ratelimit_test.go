package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalLimiter_SpacesCalls(t *testing.T) {
	limiter := NewIntervalLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.Acquire(ctx))
	require.NoError(t, limiter.Acquire(ctx))
	require.NoError(t, limiter.Acquire(ctx))
	elapsed := time.Since(start)

	// Three acquisitions require two full intervals of spacing.
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
}

func TestIntervalLimiter_FirstCallImmediate(t *testing.T) {
	limiter := NewIntervalLimiter(time.Second)

	start := time.Now()
	require.NoError(t, limiter.Acquire(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestIntervalLimiter_ContextCancelled(t *testing.T) {
	limiter := NewIntervalLimiter(time.Minute)
	require.NoError(t, limiter.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestIntervalLimiter_DefaultInterval(t *testing.T) {
	limiter := NewIntervalLimiter(0)
	assert.Equal(t, DefaultInterval, limiter.interval)
}

func TestUnlimited(t *testing.T) {
	var limiter Unlimited
	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, limiter.Acquire(context.Background()))
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
