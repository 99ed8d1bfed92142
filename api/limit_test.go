package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientLimiterDropsIdleClients(t *testing.T) {
	clock := time.Date(2022, 7, 1, 12, 0, 0, 0, time.UTC)
	c := newClientLimiter(1)
	c.now = func() time.Time { return clock }

	first := c.get("10.0.0.1")
	c.get("10.0.0.2")
	assert.Equal(t, 2, c.size())
	assert.Same(t, first, c.get("10.0.0.1"))

	clock = clock.Add(idleLimiterTTL / 2)
	c.get("10.0.0.1")

	clock = clock.Add(idleLimiterTTL/2 + time.Second)
	c.get("10.0.0.3")
	assert.Equal(t, 2, c.size())

	clock = clock.Add(2 * idleLimiterTTL)
	c.get("10.0.0.1")
	assert.Equal(t, 1, c.size())
	assert.NotSame(t, first, c.get("10.0.0.1"))
}
