package guardrails

import (
	"context"

	"realty-content-engine/pkg/gemini"
	"realty-content-engine/pkg/llmprovider"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// createManagerFromGeminiClient creates a provider manager with a single
// Gemini provider for testing
func createManagerFromGeminiClient(client gemini.IGemini, logger *mockLogger) *llmprovider.Manager {
	provider := llmprovider.NewGeminiAdapter(client)
	config := &llmprovider.Config{
		FallbackEnabled: false,
		RetryAttempts:   1,
	}
	return llmprovider.NewManager([]llmprovider.Provider{provider}, config, logger)
}

// Mock Gemini client for testing
type mockGeminiClient struct {
	response   *gemini.Response
	err        error
	callCount  int
	lastPrompt string
}

func (m *mockGeminiClient) GenerateContent(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	m.callCount++
	if len(req.Messages) > 0 && len(req.Messages[len(req.Messages)-1].Parts) > 0 {
		m.lastPrompt = req.Messages[len(req.Messages)-1].Parts[0].Text
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockGeminiClient) Model() string {
	return "gemini-test"
}

func geminiTextResponse(text string) *gemini.Response {
	return &gemini.Response{
		Content: gemini.Content{
			Role:  "model",
			Parts: []gemini.Part{{Text: text}},
		},
		Usage: &gemini.Usage{},
	}
}
