package http

import (
	"github.com/gin-gonic/gin"
)

// processRunReq binds and validates the workflow run request body.
func (h *handler) processRunReq(c *gin.Context) (runReq, error) {
	var req runReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processResearchReq binds and validates the research flow request body.
func (h *handler) processResearchReq(c *gin.Context) (researchReq, error) {
	var req researchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processInstagramPostReq binds and validates the direct post request body.
func (h *handler) processInstagramPostReq(c *gin.Context) (instagramPostReq, error) {
	var req instagramPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processScheduleReq binds and validates the schedule request body.
func (h *handler) processScheduleReq(c *gin.Context) (scheduleReq, error) {
	var req scheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processHistoryListReq binds the history list query parameters.
func (h *handler) processHistoryListReq(c *gin.Context) (historyListReq, error) {
	var req historyListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processSearchReq binds and validates the search query parameters.
func (h *handler) processSearchReq(c *gin.Context) (searchReq, error) {
	var req searchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processSetGuardrailReq binds and validates the guardrail toggle body.
func (h *handler) processSetGuardrailReq(c *gin.Context) (setGuardrailReq, error) {
	var req setGuardrailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
