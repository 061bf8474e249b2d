package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	minIdleTTL    = 10 * time.Minute
	sweepInterval = time.Minute
)

// RateLimit allows perMinute requests per caller with the given burst.
// Callers are keyed by userID when authenticated, by client IP otherwise.
func RateLimit(perMinute, burst int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	set := newLimiterSet(perMinute, burst, time.Now)

	return func(c *gin.Context) {
		key := c.GetString("userID")
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		if delay := set.reserve(key); delay > 0 {
			c.Header("Retry-After", strconv.Itoa(int(delay.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
				"hint":  "Aguarde um momento e tente novamente.",
			})
			return
		}

		c.Next()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one token bucket per caller and forgets callers that
// stayed idle long enough for their bucket to refill completely.
type limiterSet struct {
	every   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

func newLimiterSet(perMinute, burst int, now func() time.Time) *limiterSet {
	if burst <= 0 {
		burst = 1
	}

	interval := time.Minute / time.Duration(perMinute)
	ttl := time.Duration(burst) * interval
	if ttl < minIdleTTL {
		ttl = minIdleTTL
	}

	return &limiterSet{
		every:     rate.Every(interval),
		burst:     burst,
		idleTTL:   ttl,
		now:       now,
		visitors:  make(map[string]*visitor),
		lastSweep: now(),
	}
}

// reserve takes a token for key and returns how long the caller has to
// wait for it. A zero delay means the request may proceed.
func (s *limiterSet) reserve(key string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweepLocked(now)
	}

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.every, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = now

	r := v.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	if delay > 0 {
		r.CancelAt(now)
	}
	return delay
}

func (s *limiterSet) sweepLocked(now time.Time) {
	for key, v := range s.visitors {
		if now.Sub(v.lastSeen) > s.idleTTL {
			delete(s.visitors, key)
		}
	}
	s.lastSweep = now
}

func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}
