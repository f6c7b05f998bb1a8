package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"realty-content-engine/internal/session"
	"realty-content-engine/pkg/response"
)

// maxSessionImportBytes caps the accepted session import payload.
const maxSessionImportBytes = 1 << 20

// ListSessions godoc
// @Summary     List active sessions
// @Tags        Sessions
// @Produce     json
// @Success     200 {object} sessionListResp
// @Router      /api/v1/sessions [GET]
func (h *handler) ListSessions(c *gin.Context) {
	ids := h.uc.ListSessions()
	response.OK(c, sessionListResp{Sessions: ids, Total: len(ids)})
}

// SessionDetail godoc
// @Summary     Get one session
// @Description Returns the transcript, context, and generation counts of one conversation.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id} [GET]
func (h *handler) SessionDetail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, errInvalidSessionID, nil)
		return
	}

	sess, ok := h.uc.GetSession(id)
	if !ok {
		response.NotFound(c, session.ErrSessionNotFound)
		return
	}

	response.OK(c, newSessionResp(sess))
}

// ClearSession godoc
// @Summary     Clear a session
// @Description Drops the transcript and context while keeping the session and its generated-content record.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id}/clear [POST]
func (h *handler) ClearSession(c *gin.Context) {
	if !h.uc.ClearSession(c.Param("id")) {
		response.NotFound(c, session.ErrSessionNotFound)
		return
	}
	response.OK(c, nil)
}

// DeleteSession godoc
// @Summary     Delete a session
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id} [DELETE]
func (h *handler) DeleteSession(c *gin.Context) {
	if !h.uc.DeleteSession(c.Param("id")) {
		response.NotFound(c, session.ErrSessionNotFound)
		return
	}
	response.OK(c, nil)
}

// ExportSession godoc
// @Summary     Export a session
// @Description Returns the full session as a JSON download suitable for later import.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {file} file
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id}/export [GET]
func (h *handler) ExportSession(c *gin.Context) {
	id := c.Param("id")

	data, err := h.uc.ExportSession(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="session-`+id+`.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// ImportSession godoc
// @Summary     Import a session
// @Description Restores a previously exported session. An existing session with the same id is replaced.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Success     200 {object} sessionResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/sessions/import [POST]
func (h *handler) ImportSession(c *gin.Context) {
	ctx := c.Request.Context()

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSessionImportBytes))
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	sess, err := h.uc.ImportSession(data)
	if err != nil {
		h.l.Warnf(ctx, "uc.ImportSession: %v", err)
		response.Error(c, err, nil)
		return
	}

	response.OK(c, newSessionResp(sess))
}
