package guardrails

import (
	"context"
	"errors"
	"testing"
)

func newTestTopicalGuard(t *testing.T, client *mockGeminiClient, onError ErrorPolicy) *TopicalGuard {
	t.Helper()
	logger := &mockLogger{}
	lex := newTestLexicon(t)
	if client == nil {
		return NewTopicalGuard(lex, nil, DefaultSemanticThreshold, onError, logger)
	}
	return NewTopicalGuard(lex, createManagerFromGeminiClient(client, logger), DefaultSemanticThreshold, onError, logger)
}

func TestTopicalGuardCheckTopic(t *testing.T) {
	ctx := context.Background()

	t.Run("Domain Keywords", func(t *testing.T) {
		guard := newTestTopicalGuard(t, nil, PolicyAllow)
		check, err := guard.CheckTopic(ctx, "Write a property listing for a house")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !check.IsOnTopic {
			t.Fatalf("expected on-topic, got reason %s", check.Reason)
		}
		if check.Confidence != 1.0 {
			t.Errorf("expected confidence 1.0, got %f", check.Confidence)
		}
		if len(check.MatchedKeywords) != 3 {
			t.Errorf("expected 3 matched keywords, got %v", check.MatchedKeywords)
		}
	})

	t.Run("Off Topic Indicators", func(t *testing.T) {
		guard := newTestTopicalGuard(t, nil, PolicyAllow)
		check, err := guard.CheckTopic(ctx, "Tell me about cryptocurrency and bitcoin trading")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if check.IsOnTopic {
			t.Fatal("expected off-topic verdict")
		}
		if check.Confidence != 0 {
			t.Errorf("expected confidence 0, got %f", check.Confidence)
		}
		if len(check.OffTopicMatches) != 2 {
			t.Errorf("expected 2 off-topic matches, got %v", check.OffTopicMatches)
		}
	})

	t.Run("Single Domain Keyword Wins Ties", func(t *testing.T) {
		guard := newTestTopicalGuard(t, nil, PolicyAllow)
		check, err := guard.CheckTopic(ctx, "a blog about real estate and programming")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !check.IsOnTopic {
			t.Fatal("expected any domain keyword to keep the request on-topic")
		}
		if check.Confidence != 0.5 {
			t.Errorf("expected confidence 0.5, got %f", check.Confidence)
		}
	})

	t.Run("No Indicators Without LLM Allows", func(t *testing.T) {
		guard := newTestTopicalGuard(t, nil, PolicyAllow)
		check, err := guard.CheckTopic(ctx, "hello there")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !check.IsOnTopic {
			t.Fatal("expected ambiguous request to be allowed")
		}
		if check.Reason != "No clear topic indicators found, allowing by default" {
			t.Errorf("unexpected reason: %s", check.Reason)
		}
	})

	t.Run("No Indicators With LLM Uses Semantic", func(t *testing.T) {
		client := &mockGeminiClient{response: geminiTextResponse("OFF_TOPIC")}
		guard := newTestTopicalGuard(t, client, PolicyAllow)
		check, err := guard.CheckTopic(ctx, "hello there")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if check.IsOnTopic {
			t.Fatal("expected semantic off-topic verdict")
		}
		if check.Confidence != 0.85 {
			t.Errorf("expected confidence 0.85, got %f", check.Confidence)
		}
		if client.callCount != 1 {
			t.Errorf("expected 1 semantic call, got %d", client.callCount)
		}
	})
}

func TestTopicalGuardValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("Confident Verdict Skips Semantic", func(t *testing.T) {
		client := &mockGeminiClient{response: geminiTextResponse("OFF_TOPIC")}
		guard := newTestTopicalGuard(t, client, PolicyAllow)
		result := guard.Validate(ctx, "Sell my house fast")
		if !result.Passed {
			t.Fatalf("expected validation to pass, got %s", result.Message)
		}
		if client.callCount != 0 {
			t.Errorf("expected no semantic calls, got %d", client.callCount)
		}
	})

	t.Run("Low Confidence Escalates", func(t *testing.T) {
		client := &mockGeminiClient{response: geminiTextResponse("ON_TOPIC")}
		guard := newTestTopicalGuard(t, client, PolicyAllow)
		result := guard.Validate(ctx, "a blog about real estate and programming")
		if !result.Passed {
			t.Fatalf("expected semantic check to allow, got %s", result.Message)
		}
		if client.callCount != 1 {
			t.Errorf("expected 1 semantic call, got %d", client.callCount)
		}
	})

	t.Run("Off Topic Blocked With Message", func(t *testing.T) {
		guard := newTestTopicalGuard(t, nil, PolicyAllow)
		result := guard.Validate(ctx, "Tell me about cryptocurrency and bitcoin trading")
		if result.Passed {
			t.Fatal("expected validation to fail")
		}
		if result.Message != MsgOffTopic {
			t.Errorf("unexpected message: %s", result.Message)
		}
	})

	t.Run("Evaluator Error Allows By Default", func(t *testing.T) {
		client := &mockGeminiClient{err: errors.New("provider unavailable")}
		guard := newTestTopicalGuard(t, client, PolicyAllow)
		result := guard.Validate(ctx, "hello there")
		if !result.Passed {
			t.Fatalf("expected allow policy to pass, got %s", result.Message)
		}
		if _, ok := result.Details["error"]; !ok {
			t.Error("expected evaluator error to be recorded in details")
		}
	})

	t.Run("Evaluator Error Blocks Under Block Policy", func(t *testing.T) {
		client := &mockGeminiClient{err: errors.New("provider unavailable")}
		guard := newTestTopicalGuard(t, client, PolicyBlock)
		result := guard.Validate(ctx, "hello there")
		if result.Passed {
			t.Fatal("expected block policy to fail on evaluator error")
		}
		if result.Message != MsgOffTopic {
			t.Errorf("unexpected message: %s", result.Message)
		}
	})
}

func TestTopicalGuardSuggestions(t *testing.T) {
	guard := newTestTopicalGuard(t, nil, PolicyAllow)
	suggestions := guard.Suggestions()
	if len(suggestions) != 8 {
		t.Fatalf("expected 8 suggestions, got %d", len(suggestions))
	}
	if suggestions[0] != "Write a property listing description for a 3-bedroom house" {
		t.Errorf("unexpected first suggestion: %s", suggestions[0])
	}
}
