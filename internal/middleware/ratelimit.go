package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// client tracks request count and last activity for one IP.
type client struct {
	lastSeen time.Time
	count    int
}

// In-memory per-IP rate limit state. Single-instance only; a shared
// store would be needed behind a load balancer.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 60
	rateLimiterLock sync.Mutex
)

// RateLimiter caps each client IP at `limit` requests per `window`,
// answering 429 beyond that.
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		// Drop entries idle past the window so the map does not grow
		// with every IP ever seen.
		for k, v := range clients {
			if now.Sub(v.lastSeen) > window {
				delete(clients, k)
			}
		}
		cl, ok := clients[ip]
		if !ok {
			cl = &client{lastSeen: now, count: 1}
			clients[ip] = cl
		} else {
			cl.count++
			cl.lastSeen = now
		}
		exceeded := cl.count > limit
		rateLimiterLock.Unlock()

		if exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
