package api

import (
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Fontikcz12/quantizer/model"
	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long a client's bucket survives without requests.
const idleLimiterTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client address. Buckets idle for
// longer than idle are dropped, at most once per idle period.
type clientLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	clients   map[string]*clientBucket
	now       func() time.Time
}

func newClientLimiter(perSecond float64) *clientLimiter {
	return &clientLimiter{
		limit:   rate.Limit(perSecond),
		burst:   int(math.Max(1, math.Ceil(perSecond))),
		idle:    idleLimiterTTL,
		clients: make(map[string]*clientBucket),
		now:     time.Now,
	}
}

func (c *clientLimiter) get(client string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if now.Sub(c.lastSweep) >= c.idle {
		c.sweep(now)
	}
	b, ok := c.clients[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.clients[client] = b
	}
	b.lastSeen = now
	return b.limiter
}

func (c *clientLimiter) sweep(now time.Time) {
	for addr, b := range c.clients {
		if now.Sub(b.lastSeen) >= c.idle {
			delete(c.clients, addr)
		}
	}
	c.lastSweep = now
}

func (c *clientLimiter) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.clients)
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (c *clientLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !c.get(clientAddr(r)).Allow() {
			writeJSON(w, http.StatusTooManyRequests, model.ErrorResponse{Error: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
