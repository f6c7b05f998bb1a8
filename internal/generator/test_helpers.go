package generator

import (
	"context"

	"realty-content-engine/internal/guardrails"
	"realty-content-engine/internal/model"
	"realty-content-engine/pkg/gemini"
	"realty-content-engine/pkg/imageprovider"
	"realty-content-engine/pkg/llmprovider"
	"realty-content-engine/pkg/websearch"
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

// Mock Gemini client; records the last prompt so tests can assert on
// what the generator actually asked for.
type mockGeminiClient struct {
	response   *gemini.Response
	err        error
	callCount  int
	lastPrompt string
	lastSystem string
}

func (m *mockGeminiClient) GenerateContent(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	m.callCount++
	if req.SystemInstruction != nil && len(req.SystemInstruction.Parts) > 0 {
		m.lastSystem = req.SystemInstruction.Parts[0].Text
	}
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

// textManager wraps a mock Gemini client in a real provider manager so
// generators exercise the same code path they do in production.
func textManager(client gemini.IGemini) *llmprovider.Manager {
	provider := llmprovider.NewGeminiAdapter(client)
	config := &llmprovider.Config{
		FallbackEnabled: false,
		RetryAttempts:   1,
	}
	return llmprovider.NewManager([]llmprovider.Provider{provider}, config, &mockLogger{})
}

// Mock image provider for testing
type mockImageProvider struct {
	response   *imageprovider.Response
	err        error
	callCount  int
	lastPrompt string
	lastAspect string
}

func (m *mockImageProvider) GenerateImage(ctx context.Context, req *imageprovider.Request) (*imageprovider.Response, error) {
	m.callCount++
	m.lastPrompt = req.Prompt
	m.lastAspect = req.AspectRatio
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockImageProvider) Name() string  { return "mock-image" }
func (m *mockImageProvider) Model() string { return "mock-image-model" }

func imageManager(provider *mockImageProvider) *imageprovider.Manager {
	config := &imageprovider.Config{
		FallbackEnabled: false,
		RetryAttempts:   1,
	}
	return imageprovider.NewManager([]imageprovider.Provider{provider}, config, &mockLogger{})
}

func imageURLResponse(url string) *imageprovider.Response {
	return &imageprovider.Response{
		Images:       []imageprovider.Image{{URL: url}},
		ProviderName: "mock-image",
		ModelName:    "mock-image-model",
	}
}

// Mock web search provider for testing
type mockSearchProvider struct {
	results   []websearch.Result
	questions []websearch.Question
	err       error
	lastQuery websearch.Query
}

func (m *mockSearchProvider) Search(ctx context.Context, q websearch.Query) ([]websearch.Result, error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockSearchProvider) RelatedQuestions(ctx context.Context, query string) ([]websearch.Question, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.questions, nil
}

func (m *mockSearchProvider) Name() string { return "mock-search" }

// Mock guardrails usecase with overridable behavior per method.
type mockGuard struct {
	validateImageRequestFunc func(ctx context.Context, prompt string) model.GuardrailResult
	validateSafetyOnlyFunc   func(ctx context.Context, input string, kind model.ValidationKind) model.GuardrailResult
}

func (m *mockGuard) ValidateInput(ctx context.Context, input string, kind model.ValidationKind, contentType model.ContentType) model.GuardrailResult {
	return model.GuardrailResult{Passed: true}
}

func (m *mockGuard) ValidateSafetyOnly(ctx context.Context, input string, kind model.ValidationKind) model.GuardrailResult {
	if m.validateSafetyOnlyFunc != nil {
		return m.validateSafetyOnlyFunc(ctx, input, kind)
	}
	return model.GuardrailResult{Passed: true}
}

func (m *mockGuard) ValidateOutput(ctx context.Context, output string, kind model.ValidationKind) model.GuardrailResult {
	return model.GuardrailResult{Passed: true}
}

func (m *mockGuard) ValidateImageRequest(ctx context.Context, prompt string) model.GuardrailResult {
	if m.validateImageRequestFunc != nil {
		return m.validateImageRequestFunc(ctx, prompt)
	}
	return model.GuardrailResult{Passed: true}
}

func (m *mockGuard) Enable(guard model.GuardName) error  { return nil }
func (m *mockGuard) Disable(guard model.GuardName) error { return nil }
func (m *mockGuard) IsEnabled() bool                     { return true }
func (m *mockGuard) Status() guardrails.Status           { return guardrails.Status{} }
func (m *mockGuard) TopicSuggestions() []string          { return nil }
