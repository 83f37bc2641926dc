package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_CeilingIsExact(t *testing.T) {
	limiter := NewRateLimiter(500)

	for i := 0; i < 500; i++ {
		require.NoError(t, limiter.Reserve("token-a"), "request %d should be allowed", i+1)
	}
	assert.ErrorIs(t, limiter.Reserve("token-a"), ErrTooManyRequests)
}

func TestRateLimiter_TokensAreIndependent(t *testing.T) {
	limiter := NewRateLimiter(1)

	require.NoError(t, limiter.Reserve("token-a"))
	assert.ErrorIs(t, limiter.Reserve("token-a"), ErrTooManyRequests)

	// a different token has its own counter
	assert.NoError(t, limiter.Reserve("token-b"))
}

func TestRateLimiter_DayRolloverResetsCounter(t *testing.T) {
	current := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)
	limiter := NewRateLimiter(1)
	limiter.now = func() time.Time { return current }

	require.NoError(t, limiter.Reserve("token-a"))
	require.ErrorIs(t, limiter.Reserve("token-a"), ErrTooManyRequests)

	current = current.Add(2 * time.Minute) // past midnight UTC
	assert.NoError(t, limiter.Reserve("token-a"))
}

func TestRateLimiter_PruneBeforeDropsOldDays(t *testing.T) {
	current := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(10)
	limiter.now = func() time.Time { return current }

	require.NoError(t, limiter.Reserve("token-a"))

	current = current.Add(24 * time.Hour)
	require.NoError(t, limiter.Reserve("token-a"))

	removed := limiter.PruneBefore(current)
	assert.Equal(t, 1, removed)

	// today's counter is untouched
	limiter.counts["token-a_"+current.Format(dateLayout)] = 10
	assert.ErrorIs(t, limiter.Reserve("token-a"), ErrTooManyRequests)
}

func TestRateLimiter_ConcurrentReservesNeverPassCeiling(t *testing.T) {
	limiter := NewRateLimiter(50)

	allowed := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		go func() {
			allowed <- limiter.Reserve("token-a") == nil
		}()
	}

	count := 0
	for i := 0; i < 100; i++ {
		if <-allowed {
			count++
		}
	}
	assert.Equal(t, 50, count)
}
