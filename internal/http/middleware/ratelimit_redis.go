package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	redis "github.com/redis/go-redis/v9"
)

// KeyFunc picks the identity a request is limited by. An empty key skips
// limiting for that request.
type KeyFunc func(c *gin.Context) string

func ClientIPKey(c *gin.Context) string { return c.ClientIP() }

// TgIDKey limits per Telegram user; it needs JWT to run first.
func TgIDKey(c *gin.Context) string {
	v, ok := c.Get(ctxTgID)
	if !ok {
		return ""
	}
	id, _ := v.(int64)
	return strconv.FormatInt(id, 10)
}

// NewRedisClient connects and pings. Callers fall back to the in-memory
// limiter when it fails.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// RedisRateLimit applies a GCRA limit shared by every instance behind the
// same Redis. Redis errors fail open.
// key format: rl:<scope>:<identity>
func RedisRateLimit(limiter *redis_rate.Limiter, scope string, limit redis_rate.Limit, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := key(c)
		if ident == "" {
			c.Next()
			return
		}

		res, err := limiter.Allow(c.Request.Context(), "rl:"+scope+":"+ident, limit)
		if err != nil {
			// on Redis error, fail-open (allow) but set header
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if res.Allowed == 0 {
			RLBlocked.WithLabelValues(scope).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(res.RetryAfter.Seconds() + 0.5),
			})
			return
		}

		RLRequests.WithLabelValues(scope).Inc()
		c.Next()
	}
}
