package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// newTestRouter wraps a single route with the rate limiter.
func newTestRouter(m Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/run", m.RateLimit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}
