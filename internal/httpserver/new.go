package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"realty-content-engine/internal/content"
	tgDelivery "realty-content-engine/internal/content/delivery/telegram"
	"realty-content-engine/internal/middleware"
	"realty-content-engine/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Content domain
	contentUC content.UseCase
	rateLimit middleware.RateLimitConfig

	// Telegram webhook (optional)
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Content domain
	ContentUC content.UseCase
	RateLimit middleware.RateLimitConfig

	// Telegram webhook (optional)
	TelegramHandler tgDelivery.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.Default(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		contentUC:       cfg.ContentUC,
		rateLimit:       cfg.RateLimit,
		telegramHandler: cfg.TelegramHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.contentUC == nil {
		return errors.New("content use case is required")
	}
	return nil
}
