package middleware

import (
	"fmt"
	"net/http"
	"time"

	"lmsplatform/internal/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per client IP in fixed redis windows.
type RateLimiter struct {
	redisClient redis.Cmdable
	log         *logger.Logger
}

func NewRateLimiter(client redis.Cmdable, log *logger.Logger) *RateLimiter {
	return &RateLimiter{redisClient: client, log: log.With("middleware", "RateLimiter")}
}

// Limit allows limit requests per window for the named action. Redis errors
// let the request through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		count, err := rl.redisClient.Incr(c, key).Result()
		if err != nil {
			rl.log.Warn("Rate limiter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		// First hit opens the window.
		if count == 1 {
			rl.redisClient.Expire(c, key, window)
		}

		if count > int64(limit) {
			ttl, _ := rl.redisClient.TTL(c, key).Result()
			c.Header("Retry-After", fmt.Sprintf("%.0f", ttl.Seconds()))
			c.String(http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
