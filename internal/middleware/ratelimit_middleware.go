package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/GTDGit/inventory_api/internal/utils"
)

// InvalidAuthRateLimiter limits failed authentication attempts per IP.
// Successful attempts cost nothing.
type InvalidAuthRateLimiter struct {
	mu       sync.Mutex
	perMin   int
	limiters map[string]*ipLimiter
	now      func() time.Time
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewInvalidAuthRateLimiter allows attemptsPerMinute failures per IP, in a
// burst, refilled evenly over a minute.
func NewInvalidAuthRateLimiter(attemptsPerMinute int) *InvalidAuthRateLimiter {
	return &InvalidAuthRateLimiter{
		perMin:   attemptsPerMinute,
		limiters: make(map[string]*ipLimiter),
		now:      time.Now,
	}
}

func (r *InvalidAuthRateLimiter) get(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.limiters[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(r.perMin)), r.perMin)}
		r.limiters[ip] = l
	}
	l.lastSeen = r.now()
	return l.limiter
}

// Blocked reports whether ip has no failed attempts left.
func (r *InvalidAuthRateLimiter) Blocked(ip string) bool {
	return r.get(ip).TokensAt(r.now()) < 1
}

// Fail records a failed attempt from ip.
func (r *InvalidAuthRateLimiter) Fail(ip string) {
	r.get(ip).AllowN(r.now(), 1)
}

// Sweep forgets IPs not seen for longer than idle and returns how many
// were dropped.
func (r *InvalidAuthRateLimiter) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	dropped := 0
	for ip, l := range r.limiters {
		if l.lastSeen.Before(cutoff) {
			delete(r.limiters, ip)
			dropped++
		}
	}
	return dropped
}

// Handle rejects requests from IPs that exhausted their failed attempts and
// counts every 401 response as a failure.
func (r *InvalidAuthRateLimiter) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if r.Blocked(ip) {
			utils.Error(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many invalid authentication attempts")
			c.Abort()
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusUnauthorized {
			r.Fail(ip)
		}
	}
}
