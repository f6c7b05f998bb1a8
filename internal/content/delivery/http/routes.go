package http

import (
	"github.com/gin-gonic/gin"

	"realty-content-engine/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. The
// generation routes sit behind the rate limiter; the read-only surfaces
// do not.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	contentGroup := rg.Group("/content")
	{
		contentGroup.POST("/run", mw.RateLimit(), h.Run)
		contentGroup.POST("/run-with-research", mw.RateLimit(), h.RunWithResearch)
		contentGroup.POST("/instagram-post", mw.RateLimit(), h.InstagramPost)
		contentGroup.POST("/schedule", mw.RateLimit(), h.Schedule)
	}

	history := rg.Group("/history")
	{
		history.GET("", h.ListHistory)
		history.GET("/search", h.SearchHistory)
		history.GET("/stats", h.HistoryStats)
		history.GET("/:id", h.HistoryDetail)
		history.GET("/:id/export", h.ExportHistory)
		history.DELETE("/:id", h.DeleteHistory)
		history.DELETE("", h.ClearHistory)
	}

	sessions := rg.Group("/sessions")
	{
		sessions.GET("", h.ListSessions)
		sessions.POST("/import", h.ImportSession)
		sessions.GET("/:id", h.SessionDetail)
		sessions.GET("/:id/export", h.ExportSession)
		sessions.POST("/:id/clear", h.ClearSession)
		sessions.DELETE("/:id", h.DeleteSession)
	}

	guardrailsGroup := rg.Group("/guardrails")
	{
		guardrailsGroup.GET("/status", h.GuardrailsStatus)
		guardrailsGroup.GET("/suggestions", h.TopicSuggestions)
		guardrailsGroup.PUT("/:guard", h.SetGuardrail)
	}
}
