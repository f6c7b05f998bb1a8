package http

import (
	"github.com/gin-gonic/gin"

	"realty-content-engine/pkg/response"
)

// Run godoc
// @Summary     Run the content workflow
// @Description Routes one user request through guardrails, tier routing, and generation. Blocked or failed runs return success=false in the payload, not an HTTP error.
// @Tags        Content
// @Accept      json
// @Produce     json
// @Param       body body runReq true "User request"
// @Success     200 {object} runResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/content/run [POST]
func (h *handler) Run(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRunReq(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	output := h.uc.Run(ctx, req.toInput())
	response.OK(c, newRunResp(output))
}

// RunWithResearch godoc
// @Summary     Generate research-grounded content
// @Description Researches the topic first, then writes the requested content type grounded on the findings, in one session.
// @Tags        Content
// @Accept      json
// @Produce     json
// @Param       body body researchReq true "Topic and target content type"
// @Success     200 {object} researchResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/content/run-with-research [POST]
func (h *handler) RunWithResearch(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processResearchReq(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	output := h.uc.RunWithResearch(ctx, req.toInput())
	response.OK(c, newResearchResp(output))
}

// InstagramPost godoc
// @Summary     Generate an Instagram post directly
// @Description Builds image and caption from a property description, bypassing the router. Degrades to caption-only when image generation fails.
// @Tags        Content
// @Accept      json
// @Produce     json
// @Param       body body instagramPostReq true "Image description and property details"
// @Success     200 {object} instagramPostResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/content/instagram-post [POST]
func (h *handler) InstagramPost(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processInstagramPostReq(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	output, err := h.uc.GenerateInstagramPost(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.GenerateInstagramPost: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newInstagramPostResp(output))
}

// Schedule godoc
// @Summary     Schedule a publishing slot
// @Description Books a Google Calendar event for a stored history entry. The slot accepts natural phrases like "tomorrow" or "next monday".
// @Tags        Content
// @Accept      json
// @Produce     json
// @Param       body body scheduleReq true "Entry and slot"
// @Success     200 {object} scheduleResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Entry Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/content/schedule [POST]
func (h *handler) Schedule(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processScheduleReq(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	output, err := h.uc.Schedule(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Schedule: %v", err)
		h.respondError(c, err)
		return
	}

	response.OK(c, newScheduleResp(output))
}
