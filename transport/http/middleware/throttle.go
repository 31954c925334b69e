package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// throttle keeps one token bucket per key. Buckets idle for longer than idleTTL
// are swept on the next access after the TTL has elapsed.
type throttle struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

func newThrottle(perSecond float64, burst int, idleTTL time.Duration) *throttle {
	return &throttle{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		idleTTL:  idleTTL,
	}
}

func (t *throttle) allow(key string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if now.Sub(t.lastSweep) > t.idleTTL {
		t.sweep(now)
	}

	v, ok := t.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.visitors[key] = v
	}

	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (t *throttle) sweep(now time.Time) {
	for key, v := range t.visitors {
		if now.Sub(v.lastSeen) > t.idleTTL {
			delete(t.visitors, key)
		}
	}

	t.lastSweep = now
}

func (t *throttle) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.visitors)
}
