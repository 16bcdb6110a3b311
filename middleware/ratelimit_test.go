package middleware_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"scribe/middleware"
)

func TestIPRateLimiter(t *testing.T) {
	rl := middleware.NewIPRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "attempt %d", i)
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other IPs are tracked independently
	assert.True(t, rl.Allow("10.0.0.2"))
}
