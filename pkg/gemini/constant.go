package gemini

import "time"

const (
	// DefaultModel is the default Gemini model
	DefaultModel = "gemini-1.5-flash"

	// DefaultAPIURL is the default Gemini API endpoint
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	// MaxInputChars caps prompt size before a request is sent.
	// Oversized prompts are truncated instead of rejected.
	MaxInputChars = 200_000

	// ImageOmittedPlaceholder replaces inline base64 images in prompts.
	ImageOmittedPlaceholder = "[image omitted]"
)
