package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/habitrail/habit-tracker-api/internal/errors"
	"github.com/habitrail/habit-tracker-api/internal/logger"
	"github.com/redis/go-redis/v9"
)

// RateLimit applies a fixed-window limit per client IP and path, counted in
// redis. A nil client disables the limiter; redis failures let the request
// through rather than blocking traffic on an unavailable counter.
func RateLimit(rdb *redis.Client, log *logger.Logger, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.Warn("failed to set rate limit window", "error", err)
			}
		}

		if count > int64(limit) {
			apierrors.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
