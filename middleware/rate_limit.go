package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/skillup-labs/skillup/config"
	"github.com/skillup-labs/skillup/utils"
)

// clientLimiter is one token bucket per client IP. Idle buckets expire so the
// map does not grow with every address ever seen.
type clientLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

const limiterIdleTTL = 5 * time.Minute

var (
	limiters   = map[string]*clientLimiter{}
	limitersMu sync.Mutex
)

// RateLimitMiddleware throttles requests per client IP with a token bucket
// sized from the configured per-minute budget.
func RateLimitMiddleware() gin.HandlerFunc {
	cfg := config.Get()
	perMinute := max(cfg.RateLimitPerMinute, 1)
	limit := rate.Every(time.Minute / time.Duration(perMinute))
	burst := max(perMinute/2, 1)

	return func(ctx *gin.Context) {
		if !getLimiter(ctx.ClientIP(), limit, burst).Allow() {
			utils.Error(ctx, http.StatusTooManyRequests, 42901, "rate limit exceeded")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func getLimiter(key string, limit rate.Limit, burst int) *rate.Limiter {
	limitersMu.Lock()
	defer limitersMu.Unlock()

	now := time.Now()
	for k, l := range limiters {
		if now.After(l.expires) {
			delete(limiters, k)
		}
	}

	l, ok := limiters[key]
	if !ok {
		l = &clientLimiter{limiter: rate.NewLimiter(limit, burst)}
		limiters[key] = l
	}
	l.expires = now.Add(limiterIdleTTL)
	return l.limiter
}
