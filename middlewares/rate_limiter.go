package middlewares

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/table-order/utils"
	"golang.org/x/time/rate"
)

var errTooManyRequests = errors.New("too many requests, please try again later")

// RateLimiter allows at most limit requests per client IP inside a sliding
// window. IPs whose window has emptied are swept once per interval.
type RateLimiter struct {
	limit     int
	interval  time.Duration
	ips       map[string][]time.Time
	lastSweep time.Time
	mu        sync.Mutex
	now       func() time.Time
}

func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		ips:      make(map[string][]time.Time),
		now:      time.Now,
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.interval {
		rl.cleanupLocked(now)
	}

	cutoff := now.Add(-rl.interval)
	valid := rl.ips[ip][:0]
	for _, t := range rl.ips[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) >= rl.limit {
		rl.ips[ip] = valid
		return false
	}
	rl.ips[ip] = append(valid, now)
	return true
}

// Cleanup forgets IPs with no request inside the window and returns how many
// were removed.
func (rl *RateLimiter) Cleanup(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.cleanupLocked(now)
}

func (rl *RateLimiter) cleanupLocked(now time.Time) int {
	rl.lastSweep = now
	cutoff := now.Add(-rl.interval)
	removed := 0
	for ip, times := range rl.ips {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.ips, ip)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			utils.AbortError(c, http.StatusTooManyRequests, errTooManyRequests)
			return
		}
		c.Next()
	}
}

type loginBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter keeps one token bucket per client IP for the login route. A
// bucket idle for a minute has refilled, so it is dropped on the next sweep.
type LoginLimiter struct {
	perMinute int
	limiters  map[string]*loginBucket
	lastSweep time.Time
	mu        sync.Mutex
	now       func() time.Time
}

func NewLoginLimiter(perMinute int) *LoginLimiter {
	if perMinute <= 0 {
		perMinute = 5
	}
	return &LoginLimiter{
		perMinute: perMinute,
		limiters:  make(map[string]*loginBucket),
		now:       time.Now,
	}
}

func (l *LoginLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= time.Minute {
		l.cleanupLocked(now)
	}

	b, ok := l.limiters[ip]
	if !ok {
		b = &loginBucket{lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute)}
		l.limiters[ip] = b
	}
	b.lastSeen = now
	return b.lim.AllowN(now, 1)
}

// Cleanup drops buckets idle for at least a minute and returns how many were
// removed.
func (l *LoginLimiter) Cleanup(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cleanupLocked(now)
}

func (l *LoginLimiter) cleanupLocked(now time.Time) int {
	l.lastSweep = now
	removed := 0
	for ip, b := range l.limiters {
		if now.Sub(b.lastSeen) >= time.Minute {
			delete(l.limiters, ip)
			removed++
		}
	}
	return removed
}

func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			utils.AbortError(c, http.StatusTooManyRequests, errTooManyRequests)
			return
		}
		c.Next()
	}
}
