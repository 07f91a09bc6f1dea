package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	start time.Time
	count int
}

// SimpleRateLimit is a per-process fixed window limiter, used when Redis is
// not configured.
func SimpleRateLimit(scope string, maxRequests int, window time.Duration, key KeyFunc) gin.HandlerFunc {
	var mu sync.Mutex
	clients := make(map[string]*clientInfo)
	now := time.Now

	return func(c *gin.Context) {
		ident := key(c)
		if ident == "" {
			c.Next()
			return
		}

		mu.Lock()
		t := now()
		ci, ok := clients[ident]
		if !ok || t.Sub(ci.start) > window {
			ci = &clientInfo{start: t}
			clients[ident] = ci
			sweep(clients, t, window)
		}
		ci.count++
		count := ci.count
		mu.Unlock()

		if count > maxRequests {
			RLBlocked.WithLabelValues(scope).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(scope).Inc()
		c.Next()
	}
}

// sweep drops expired windows once the map grows, so idle clients do not
// accumulate.
func sweep(clients map[string]*clientInfo, now time.Time, window time.Duration) {
	if len(clients) < 1024 {
		return
	}
	for k, ci := range clients {
		if now.Sub(ci.start) > window {
			delete(clients, k)
		}
	}
}
