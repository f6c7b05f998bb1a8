package telegram

import (
	"github.com/gin-gonic/gin"

	"realty-content-engine/internal/content"
	pkgLog "realty-content-engine/pkg/log"
	pkgTelegram "realty-content-engine/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc content.UseCase, bot *pkgTelegram.Bot) Handler {
	return &handler{
		l:   l,
		uc:  uc,
		bot: bot,
	}
}
