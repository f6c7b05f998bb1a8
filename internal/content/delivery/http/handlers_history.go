package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"realty-content-engine/internal/model"
	"realty-content-engine/pkg/response"
)

func entryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListHistory godoc
// @Summary     List generated content
// @Description Returns recent history entries, optionally filtered by content type and session.
// @Tags        History
// @Produce     json
// @Param       type       query string false "Filter by content type"
// @Param       session_id query string false "Filter by session"
// @Param       limit      query int    false "Page size (default: 5, max: 100)"
// @Success     200 {object} historyListResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/history [GET]
func (h *handler) ListHistory(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processHistoryListReq(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entries, err := h.uc.ListHistory(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ListHistory: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newHistoryListResp(entries))
}

// SearchHistory godoc
// @Summary     Search generated content
// @Description Semantic search over stored content when the vector index is configured, substring search otherwise.
// @Tags        History
// @Produce     json
// @Param       q     query string true  "Search query"
// @Param       type  query string false "Filter by content type"
// @Param       limit query int    false "Result cap (default: 10)"
// @Success     200 {object} searchResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/history/search [GET]
func (h *handler) SearchHistory(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSearchReq(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	output, err := h.uc.SearchHistory(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SearchHistory: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newSearchResp(output))
}

// HistoryStats godoc
// @Summary     Content history statistics
// @Description Returns totals per content type and storage size.
// @Tags        History
// @Produce     json
// @Success     200 {object} model.HistoryStats
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/history/stats [GET]
func (h *handler) HistoryStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.uc.HistoryStats(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.HistoryStats: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, stats)
}

// HistoryDetail godoc
// @Summary     Get one history entry
// @Tags        History
// @Produce     json
// @Param       id path int true "Entry ID"
// @Success     200 {object} historyEntryResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/history/{id} [GET]
func (h *handler) HistoryDetail(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := entryID(c)
	if !ok {
		response.Error(c, errInvalidEntryID, nil)
		return
	}

	entry, err := h.uc.GetHistoryEntry(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, newHistoryEntryResp(entry))
}

// DeleteHistory godoc
// @Summary     Delete one history entry
// @Description Removes the entry and its vector embedding. The type query parameter must match the entry.
// @Tags        History
// @Produce     json
// @Param       id   path  int    true "Entry ID"
// @Param       type query string true "Content type of the entry"
// @Success     200 {object} response.Resp "OK"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/history/{id} [DELETE]
func (h *handler) DeleteHistory(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := entryID(c)
	if !ok {
		response.Error(c, errInvalidEntryID, nil)
		return
	}

	if err := h.uc.DeleteHistoryEntry(ctx, model.ContentType(c.Query("type")), id); err != nil {
		h.l.Errorf(ctx, "uc.DeleteHistoryEntry: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, nil)
}

// ClearHistory godoc
// @Summary     Clear content history
// @Description Deletes all history entries, or all entries of one type when the type query parameter is set.
// @Tags        History
// @Produce     json
// @Param       type query string false "Restrict to one content type"
// @Success     200 {object} clearHistoryResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/history [DELETE]
func (h *handler) ClearHistory(c *gin.Context) {
	ctx := c.Request.Context()

	deleted, err := h.uc.ClearHistory(ctx, model.ContentType(c.Query("type")))
	if err != nil {
		h.l.Errorf(ctx, "uc.ClearHistory: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, clearHistoryResp{Deleted: deleted})
}

// ExportHistory godoc
// @Summary     Export one history entry
// @Description Renders the entry in the requested format and returns it as a file download.
// @Tags        History
// @Produce     octet-stream
// @Param       id     path  int    true  "Entry ID"
// @Param       format query string false "markdown, html, json, or social (default: markdown)"
// @Success     200 {file} file
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/history/{id}/export [GET]
func (h *handler) ExportHistory(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := entryID(c)
	if !ok {
		response.Error(c, errInvalidEntryID, nil)
		return
	}

	format := c.DefaultQuery("format", "markdown")
	output, err := h.uc.ExportHistoryEntry(ctx, id, format)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+output.Filename+`"`)
	c.Data(http.StatusOK, output.ContentType, output.Body)
}
