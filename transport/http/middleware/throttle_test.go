package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestThrottle_Burst(t *testing.T) {
	th := newThrottle(1, 2, time.Minute)
	now := time.Now()

	assert.True(t, th.allow("10.0.0.1", now))
	assert.True(t, th.allow("10.0.0.1", now))
	assert.False(t, th.allow("10.0.0.1", now))

	assert.True(t, th.allow("10.0.0.2", now), "keys have separate buckets")
	assert.True(t, th.allow("10.0.0.1", now.Add(time.Second)), "bucket refills")
}

func TestThrottle_SweepsIdleKeys(t *testing.T) {
	th := newThrottle(1, 1, time.Minute)
	now := time.Now()

	th.allow("10.0.0.1", now)
	th.allow("10.0.0.2", now)
	assert.Equal(t, 2, th.size())

	th.allow("10.0.0.3", now.Add(2*time.Minute))
	assert.Equal(t, 1, th.size())
}
