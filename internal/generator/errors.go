package generator

import "errors"

// Domain-specific errors for the generator package.
var (
	ErrLLMUnavailable   = errors.New("no text generation provider is configured")
	ErrImageUnavailable = errors.New("no image generation provider is configured")
	ErrEmptyGeneration  = errors.New("model returned empty content")
)
