package gemini

import "context"

// IGemini is the Gemini API surface the provider chain depends on.
// Implementations are safe for concurrent use.
type IGemini interface {
	// GenerateContent sends a single-turn generation request.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model returns the configured model name.
	Model() string
}

// New validates the configuration and returns a ready client.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
