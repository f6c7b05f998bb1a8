package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockProvider is a scriptable Provider for chain tests.
type mockProvider struct {
	name       string
	model      string
	shouldFail bool
	response   *Response
	callCount  int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	if m.shouldFail {
		return nil, errors.New("mock provider error")
	}
	return m.response, nil
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.model }

type mockLogger struct {
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any) {
	if len(arg) > 0 {
		if msg, ok := arg[0].(string); ok {
			m.infoMessages = append(m.infoMessages, msg)
		}
	}
}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {
	if len(arg) > 0 {
		if msg, ok := arg[0].(string); ok {
			m.warnMessages = append(m.warnMessages, msg)
		}
	}
}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func draftRequest() *Request {
	return &Request{
		Messages: []Message{
			{
				Role: "user",
				Parts: []Part{
					{Text: "Draft a short blog post about home staging"},
				},
			},
		},
	}
}

func providerResponse(name, model, text string) *Response {
	return &Response{
		Content: Message{
			Role: "assistant",
			Parts: []Part{
				{Text: text},
			},
		},
		ProviderName: name,
		ModelName:    model,
		Usage: &Usage{
			InputTokens:  100,
			OutputTokens: 50,
			TotalTokens:  150,
		},
	}
}

func TestGenerateContent(t *testing.T) {
	t.Run("primary provider succeeds", func(t *testing.T) {
		primary := &mockProvider{
			name:     "primary",
			model:    "primary-model",
			response: providerResponse("primary", "primary-model", "Staging sells homes faster."),
		}

		logger := &mockLogger{}
		manager := NewManager([]Provider{primary}, &Config{
			FallbackEnabled: true,
			RetryAttempts:   3,
			RetryDelay:      100 * time.Millisecond,
		}, logger)

		resp, err := manager.GenerateContent(context.Background(), draftRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.ProviderName != "primary" {
			t.Errorf("expected provider 'primary', got %s", resp.ProviderName)
		}
		if primary.callCount != 1 {
			t.Errorf("expected 1 call to primary, got %d", primary.callCount)
		}
		if len(logger.infoMessages) != 1 {
			t.Errorf("expected 1 info message, got %d", len(logger.infoMessages))
		}
		if len(logger.warnMessages) != 0 {
			t.Errorf("expected no warn messages, got %d", len(logger.warnMessages))
		}
	})

	t.Run("falls back to secondary after primary exhausts retries", func(t *testing.T) {
		primary := &mockProvider{name: "primary", model: "primary-model", shouldFail: true}
		secondary := &mockProvider{
			name:     "secondary",
			model:    "secondary-model",
			response: providerResponse("secondary", "secondary-model", "Curb appeal drives first impressions."),
		}

		logger := &mockLogger{}
		manager := NewManager([]Provider{primary, secondary}, &Config{
			FallbackEnabled: true,
			RetryAttempts:   2,
			RetryDelay:      10 * time.Millisecond,
		}, logger)

		resp, err := manager.GenerateContent(context.Background(), draftRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.ProviderName != "secondary" {
			t.Errorf("expected provider 'secondary', got %s", resp.ProviderName)
		}
		if primary.callCount != 2 {
			t.Errorf("expected primary retried 2 times, got %d", primary.callCount)
		}
		if secondary.callCount != 1 {
			t.Errorf("expected 1 call to secondary, got %d", secondary.callCount)
		}
		if len(logger.warnMessages) != 1 {
			t.Errorf("expected 1 warn message for the failed chain link, got %d", len(logger.warnMessages))
		}
	})

	t.Run("all providers fail", func(t *testing.T) {
		primary := &mockProvider{name: "primary", model: "primary-model", shouldFail: true}
		secondary := &mockProvider{name: "secondary", model: "secondary-model", shouldFail: true}

		logger := &mockLogger{}
		manager := NewManager([]Provider{primary, secondary}, &Config{
			FallbackEnabled: true,
			RetryAttempts:   2,
			RetryDelay:      10 * time.Millisecond,
		}, logger)

		resp, err := manager.GenerateContent(context.Background(), draftRequest())
		if !errors.Is(err, ErrAllProvidersFailed) {
			t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
		}
		if resp != nil {
			t.Errorf("expected nil response, got %v", resp)
		}
		if primary.callCount != 2 || secondary.callCount != 2 {
			t.Errorf("expected both providers retried 2 times, got %d and %d", primary.callCount, secondary.callCount)
		}
		if len(logger.warnMessages) != 2 {
			t.Errorf("expected 2 warn messages, got %d", len(logger.warnMessages))
		}
	})

	t.Run("fallback disabled stops at primary", func(t *testing.T) {
		primary := &mockProvider{name: "primary", model: "primary-model", shouldFail: true}
		secondary := &mockProvider{
			name:     "secondary",
			model:    "secondary-model",
			response: providerResponse("secondary", "secondary-model", "unused"),
		}

		manager := NewManager([]Provider{primary, secondary}, &Config{
			FallbackEnabled: false,
			RetryAttempts:   2,
			RetryDelay:      10 * time.Millisecond,
		}, &mockLogger{})

		resp, err := manager.GenerateContent(context.Background(), draftRequest())
		if err == nil {
			t.Fatal("expected error with fallback disabled, got nil")
		}
		if resp != nil {
			t.Errorf("expected nil response, got %v", resp)
		}
		if primary.callCount != 2 {
			t.Errorf("expected primary retried 2 times, got %d", primary.callCount)
		}
		if secondary.callCount != 0 {
			t.Errorf("expected secondary untouched, got %d calls", secondary.callCount)
		}
	})

	t.Run("chain timeout stops before the fallback provider", func(t *testing.T) {
		primary := &mockProvider{name: "primary", model: "primary-model", shouldFail: true}
		secondary := &mockProvider{
			name:     "secondary",
			model:    "secondary-model",
			response: providerResponse("secondary", "secondary-model", "unused"),
		}

		manager := NewManager([]Provider{primary, secondary}, &Config{
			FallbackEnabled: true,
			RetryAttempts:   3,
			RetryDelay:      500 * time.Millisecond,
			MaxTotalTimeout: 40 * time.Millisecond,
		}, &mockLogger{})

		resp, err := manager.GenerateContent(context.Background(), draftRequest())
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
		if resp != nil {
			t.Errorf("expected nil response, got %v", resp)
		}
		if primary.callCount != 1 {
			t.Errorf("expected 1 call before the retry delay ate the budget, got %d", primary.callCount)
		}
		if secondary.callCount != 0 {
			t.Errorf("expected secondary untouched after timeout, got %d calls", secondary.callCount)
		}
	})

	t.Run("no providers configured", func(t *testing.T) {
		manager := NewManager([]Provider{}, &Config{
			FallbackEnabled: true,
			RetryAttempts:   3,
			RetryDelay:      100 * time.Millisecond,
		}, &mockLogger{})

		resp, err := manager.GenerateContent(context.Background(), draftRequest())
		if !errors.Is(err, ErrNoProvidersConfigured) {
			t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
		}
		if resp != nil {
			t.Errorf("expected nil response, got %v", resp)
		}
	})
}
