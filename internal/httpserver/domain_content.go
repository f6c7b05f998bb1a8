package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	contentHTTP "realty-content-engine/internal/content/delivery/http"
	"realty-content-engine/internal/middleware"
)

// setupContentDomain registers the content domain routes.
//
// Pattern to follow when adding a new domain:
//  1. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc)
//  2. Register Routes:     mydomainHTTP.RegisterRoutes(api.Group("/myresource"), h, mw)
func (srv HTTPServer) setupContentDomain(ctx context.Context, api *gin.RouterGroup) error {
	mw := middleware.New(srv.l, srv.rateLimit)

	h := contentHTTP.New(srv.l, srv.contentUC)

	// Registers /api/v1/content, /api/v1/history, /api/v1/sessions, /api/v1/guardrails
	contentHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Content domain registered")
	return nil
}
