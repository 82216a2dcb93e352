package middleware

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/festflow/festflow-api/internal/api/handler/v1/response"
)

const limiterTTL = 15 * time.Minute

var errRateLimited = errors.New("rate limit exceeded")

// RateLimiter hands out one token bucket per client IP. A limit of zero or
// less disables it.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	perMinute int
	now       func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		perMinute: perMinute,
		now:       time.Now,
	}
}

func (l *RateLimiter) Limit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if l.perMinute <= 0 {
			ctx.Next()
			return
		}

		if !l.limiter(ctx.ClientIP()).AllowN(l.now(), 1) {
			retryAfter := int((time.Minute / time.Duration(l.perMinute)).Seconds())
			ctx.Header("Retry-After", strconv.Itoa(max(retryAfter, 1)))
			response.RenderErr(ctx, response.ErrTooManyRequests(errRateLimited))
			return
		}

		ctx.Next()
	}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	if entry, ok := l.limiters[key]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.perMinute)
	l.limiters[key] = &limiterEntry{
		limiter:  limiter,
		lastSeen: now,
	}

	return limiter
}

// evict drops buckets idle for longer than limiterTTL. Callers hold mu.
func (l *RateLimiter) evict(now time.Time) {
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > limiterTTL {
			delete(l.limiters, key)
		}
	}
}
