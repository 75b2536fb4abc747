package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taployalty/internal/utils"
	"taployalty/pkg/logger"
)

// RateLimitCounter is the slice of the cache the limiter needs: a
// counter that starts at 1 on first increment, plus a way to put a TTL
// on it.
type RateLimitCounter interface {
	Increment(ctx context.Context, key string) (int64, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
}

// RateLimitMiddleware caps requests per client IP inside a fixed
// one-minute window. The counter key is created on the first request
// of a window and expires with it; a count of 1 means a fresh window,
// which is when the TTL gets set. Counter errors let the request
// through, an unreachable Redis must not take the API down with it.
func RateLimitMiddleware(counter RateLimitCounter, limitPerMinute int, log *logger.Logger) gin.HandlerFunc {
	if limitPerMinute <= 0 {
		limitPerMinute = utils.DefaultRateLimit
	}
	window := time.Minute

	return func(c *gin.Context) {
		key := utils.CacheRateLimitPrefix + c.ClientIP()

		count, err := counter.Increment(c.Request.Context(), key)
		if err != nil {
			log.WithError(err).Warn("rate limit counter unavailable, allowing request")
			c.Next()
			return
		}

		if count == 1 {
			if err := counter.SetExpire(c.Request.Context(), key, window); err != nil {
				log.WithError(err).WithField("key", key).
					Warn("failed to set rate limit window expiry")
			}
		}

		if count > int64(limitPerMinute) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED",
				"Too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
