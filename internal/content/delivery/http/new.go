package http

import (
	"github.com/gin-gonic/gin"

	"realty-content-engine/internal/content"
	"realty-content-engine/pkg/log"
)

// Handler is the public interface for the content HTTP delivery layer.
type Handler interface {
	Run(c *gin.Context)
	RunWithResearch(c *gin.Context)
	InstagramPost(c *gin.Context)
	Schedule(c *gin.Context)

	ListHistory(c *gin.Context)
	SearchHistory(c *gin.Context)
	HistoryStats(c *gin.Context)
	HistoryDetail(c *gin.Context)
	DeleteHistory(c *gin.Context)
	ClearHistory(c *gin.Context)
	ExportHistory(c *gin.Context)

	ListSessions(c *gin.Context)
	SessionDetail(c *gin.Context)
	ClearSession(c *gin.Context)
	DeleteSession(c *gin.Context)
	ExportSession(c *gin.Context)
	ImportSession(c *gin.Context)

	GuardrailsStatus(c *gin.Context)
	SetGuardrail(c *gin.Context)
	TopicSuggestions(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc content.UseCase
}

// New creates a new HTTP handler for the content domain.
func New(l log.Logger, uc content.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
