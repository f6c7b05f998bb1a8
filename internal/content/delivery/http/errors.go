package http

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"realty-content-engine/internal/content"
	"realty-content-engine/internal/content/repository"
	"realty-content-engine/internal/guardrails"
	"realty-content-engine/internal/session"
	"realty-content-engine/pkg/response"
)

// Delivery-level validation errors.
var (
	errInvalidEntryID   = errors.New("entry id must be a positive integer")
	errInvalidSessionID = errors.New("session id is required")
)

// respondError translates domain/use-case errors into HTTP responses.
// Validation-class errors come back as 400, missing resources as 404,
// everything unexpected as an opaque 500.
func (h *handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrEntryNotFound),
		errors.Is(err, session.ErrSessionNotFound):
		response.NotFound(c, err)
	case errors.Is(err, content.ErrEmptyInput),
		errors.Is(err, content.ErrEmptyQuery),
		errors.Is(err, content.ErrEmptyTopic),
		errors.Is(err, content.ErrEmptyImageDesc),
		errors.Is(err, content.ErrEmptySlot),
		errors.Is(err, content.ErrUnsupportedType),
		errors.Is(err, content.ErrUnsupportedFormat),
		errors.Is(err, guardrails.ErrUnknownGuard),
		isBindError(err):
		response.Error(c, err, nil)
	case errors.Is(err, content.ErrSchedulerUnavailable):
		response.Error(c, err, map[string]interface{}{"hint": "set the calendar credentials to enable scheduling"})
	default:
		response.InternalError(c, err)
	}
}

// isBindError reports whether err came from request binding: malformed
// JSON, a type mismatch, an empty body, or a failed binding tag.
func isBindError(err error) bool {
	var (
		vErrs     validator.ValidationErrors
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	return errors.As(err, &vErrs) ||
		errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF)
}
