package http

import (
	"github.com/gin-gonic/gin"

	"realty-content-engine/internal/model"
	"realty-content-engine/pkg/response"
)

// GuardrailsStatus godoc
// @Summary     Guardrails status
// @Description Reports which guards are enabled and whether the LLM-backed checks are active.
// @Tags        Guardrails
// @Produce     json
// @Success     200 {object} guardrails.Status
// @Router      /api/v1/guardrails/status [GET]
func (h *handler) GuardrailsStatus(c *gin.Context) {
	response.OK(c, h.uc.GuardrailsStatus())
}

// SetGuardrail godoc
// @Summary     Enable or disable a guard
// @Description Toggles one guard (topical, safety, image_safety) at runtime.
// @Tags        Guardrails
// @Accept      json
// @Produce     json
// @Param       guard path string          true "Guard name"
// @Param       body  body setGuardrailReq true "Desired state"
// @Success     200 {object} guardrails.Status
// @Failure     400 {object} response.Resp "Unknown guard"
// @Router      /api/v1/guardrails/{guard} [PUT]
func (h *handler) SetGuardrail(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSetGuardrailReq(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	guard := model.GuardName(c.Param("guard"))
	if err := h.uc.SetGuardrail(guard, *req.Enabled); err != nil {
		h.l.Warnf(ctx, "uc.SetGuardrail(%s): %v", guard, err)
		h.respondError(c, err)
		return
	}

	response.OK(c, h.uc.GuardrailsStatus())
}

// TopicSuggestions godoc
// @Summary     On-topic request examples
// @Description Lists example prompts shown to users whose requests were blocked as off-topic.
// @Tags        Guardrails
// @Produce     json
// @Success     200 {object} suggestionsResp
// @Router      /api/v1/guardrails/suggestions [GET]
func (h *handler) TopicSuggestions(c *gin.Context) {
	response.OK(c, suggestionsResp{Suggestions: h.uc.TopicSuggestions()})
}
