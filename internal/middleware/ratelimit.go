package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"golang.org/x/time/rate"
)

var ratePeriods = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
}

// RateLimiter throttles requests per client key (the client IP) with one token bucket each.
// A nil *RateLimiter allows everything.
type RateLimiter struct {
	limit     rate.Limit
	burst     int
	period    time.Duration
	clients   map[string]*clientLimiter
	lastSweep time.Time
	now       func() time.Time
	mu        sync.Mutex
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ParseRate parses limits written as "<count>/<period>", e.g. "40/day" or "100/hour".
// The whole count is available as a burst and refills evenly over the period.
func ParseRate(raw string) (rate.Limit, int, time.Duration, error) {
	countStr, unit, found := strings.Cut(strings.TrimSpace(raw), "/")
	if !found {
		return 0, 0, 0, fmt.Errorf("invalid rate %q: want <count>/<period>", raw)
	}

	count, err := strconv.Atoi(strings.TrimSpace(countStr))
	if err != nil || count <= 0 {
		return 0, 0, 0, fmt.Errorf("invalid rate count in %q", raw)
	}

	period, ok := ratePeriods[strings.TrimSuffix(strings.ToLower(strings.TrimSpace(unit)), "s")]
	if !ok {
		return 0, 0, 0, fmt.Errorf("invalid rate period in %q", raw)
	}

	return rate.Limit(float64(count) / period.Seconds()), count, period, nil
}

// NewRateLimiter builds a limiter from a rate string such as "40/day". An empty string or
// "off" disables limiting and returns nil.
func NewRateLimiter(raw string) (*RateLimiter, error) {
	if raw == "" || strings.EqualFold(raw, "off") {
		return nil, nil
	}

	limit, burst, period, err := ParseRate(raw)
	if err != nil {
		return nil, err
	}

	return &RateLimiter{
		limit:     limit,
		burst:     burst,
		period:    period,
		clients:   make(map[string]*clientLimiter),
		lastSweep: time.Now(),
		now:       time.Now,
	}, nil
}

// Allow reports whether a request for key may proceed
func (rl *RateLimiter) Allow(key string) bool {
	if rl == nil {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	client, exists := rl.clients[key]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = client
	}
	client.lastSeen = now

	return client.limiter.AllowN(now, 1)
}

// sweep drops clients idle for a whole period; their buckets would be full again anyway.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.period {
		return
	}
	for key, client := range rl.clients {
		if now.Sub(client.lastSeen) >= rl.period {
			delete(rl.clients, key)
		}
	}
	rl.lastSweep = now
}

// Middleware rejects requests over the limit with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			log.Warn().Str("client_ip", c.ClientIP()).Str("path", c.FullPath()).Msg("Rate limit exceeded")
			apierrors.TooManyRequests(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
