package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiterIsPerIP(t *testing.T) {
	rejected := 0
	l := NewIPRateLimiter(1, 1, func() { rejected++ })
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))

	now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.Zero(t, rejected, "Allow alone does not report rejections")
}

func TestIPRateLimiterSweep(t *testing.T) {
	l := NewIPRateLimiter(1, 1, nil)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	now = now.Add(5 * time.Minute)
	l.Allow("10.0.0.2")
	now = now.Add(6 * time.Minute)
	l.Sweep()

	assert.NotContains(t, l.visitors, "10.0.0.1")
	assert.Contains(t, l.visitors, "10.0.0.2")
}
