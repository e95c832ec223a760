package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T) (*RateLimiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     3,
		WindowDuration:  time.Minute,
		LockoutDuration: 5 * time.Minute,
		CleanupInterval: time.Hour,
	})
	rl.now = clock.Now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestRateLimiter_LocksAfterMaxFailures(t *testing.T) {
	rl, clock := newTestLimiter(t)

	for i := 0; i < 2; i++ {
		locked, _ := rl.RecordFailure("1.1.1.1", "a@example.com")
		assert.False(t, locked)
		allowed, _ := rl.Allow("1.1.1.1", "a@example.com")
		assert.True(t, allowed)
	}

	locked, retry := rl.RecordFailure("1.1.1.1", "a@example.com")
	assert.True(t, locked)
	assert.Equal(t, 5*time.Minute, retry)

	allowed, retry := rl.Allow("1.1.1.1", "A@Example.com ")
	assert.False(t, allowed, "email is normalised in the key")
	assert.Equal(t, 5*time.Minute, retry)

	t.Run("other clients are unaffected", func(t *testing.T) {
		allowed, _ := rl.Allow("2.2.2.2", "a@example.com")
		assert.True(t, allowed)
		allowed, _ = rl.Allow("1.1.1.1", "b@example.com")
		assert.True(t, allowed)
	})

	t.Run("lockout expires", func(t *testing.T) {
		clock.Advance(5*time.Minute + time.Second)
		allowed, _ := rl.Allow("1.1.1.1", "a@example.com")
		assert.True(t, allowed)

		locked, _ := rl.RecordFailure("1.1.1.1", "a@example.com")
		assert.False(t, locked, "counting restarts after a lockout")
	})
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl, clock := newTestLimiter(t)

	rl.RecordFailure("ip", "x@example.com")
	rl.RecordFailure("ip", "x@example.com")
	clock.Advance(2 * time.Minute)

	locked, _ := rl.RecordFailure("ip", "x@example.com")
	assert.False(t, locked)
}

func TestRateLimiter_SuccessClears(t *testing.T) {
	rl, _ := newTestLimiter(t)

	rl.RecordFailure("ip", "y@example.com")
	rl.RecordFailure("ip", "y@example.com")
	rl.RecordSuccess("ip", "y@example.com")

	locked, _ := rl.RecordFailure("ip", "y@example.com")
	assert.False(t, locked)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, clock := newTestLimiter(t)

	rl.RecordFailure("ip", "z@example.com")
	clock.Advance(2 * time.Minute)
	rl.cleanup()

	rl.mu.Lock()
	n := len(rl.attempts)
	rl.mu.Unlock()
	assert.Zero(t, n)

	rl.Stop()
	rl.Stop()
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, "1", RetryAfterSeconds(0))
	assert.Equal(t, "2", RetryAfterSeconds(1500*time.Millisecond))
	assert.Equal(t, "900", RetryAfterSeconds(15*time.Minute))
}
