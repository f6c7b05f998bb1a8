package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"realty-content-engine/pkg/response"
)

// RateLimit throttles requests per client IP with a token bucket. The
// generation routes sit behind it because each request can fan out into
// several model calls.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		limiter, ok := m.limiters.Get(key)
		if !ok {
			limiter = rate.NewLimiter(m.limit, m.burst)
			m.limiters.Add(key, limiter)
		}

		if !limiter.Allow() {
			m.l.Warnf(c.Request.Context(), "internal.middleware.RateLimit: throttled %s %s from %s", c.Request.Method, c.Request.URL.Path, key)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Resp{
				ErrorCode: http.StatusTooManyRequests,
				Message:   "Too many requests, slow down",
			})
			return
		}

		c.Next()
	}
}
