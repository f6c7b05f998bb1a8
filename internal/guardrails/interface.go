package guardrails

import (
	"context"

	"realty-content-engine/internal/model"
)

// UseCase is the unified entry point for guardrail validation.
type UseCase interface {
	// ValidateInput runs safety then topical validation over user input.
	// Safety failures short-circuit, so blocked text is never classified
	// for topicality. Content types granted creative freedom skip the
	// topical check entirely.
	ValidateInput(ctx context.Context, input string, kind model.ValidationKind, contentType model.ContentType) model.GuardrailResult

	// ValidateSafetyOnly runs only the safety validation, regardless of
	// content type.
	ValidateSafetyOnly(ctx context.Context, input string, kind model.ValidationKind) model.GuardrailResult

	// ValidateOutput checks generated content for safety. Topicality is
	// not re-checked on outputs.
	ValidateOutput(ctx context.Context, output string, kind model.ValidationKind) model.GuardrailResult

	// ValidateImageRequest validates an image-generation prompt, adding
	// an image-specific safety pass on top of the input validation.
	ValidateImageRequest(ctx context.Context, prompt string) model.GuardrailResult

	Enable(guard model.GuardName) error
	Disable(guard model.GuardName) error
	IsEnabled() bool
	Status() Status

	TopicSuggestions() []string
}
