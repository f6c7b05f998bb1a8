package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"realty-content-engine/internal/model"
)

const sampleCaption = "🏡 Your dream home just hit the market! Three bedrooms, chef's kitchen, and a backyard built for summer evenings. DM us for a private tour.\n\n#realestate #dreamhome #newlisting #hometour #property #forsale #luxuryhomes"

func TestInstagramGenerator_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("image and caption", func(t *testing.T) {
		llmClient := &mockGeminiClient{response: geminiTextResponse(sampleCaption)}
		imgProvider := &mockImageProvider{response: imageURLResponse("https://img.example/post.png")}

		gen := NewInstagram(textManager(llmClient), imageManager(imgProvider), &mockGuard{}, &mockLogger{})

		out, err := gen.Execute(ctx, Input{UserInput: "modern farmhouse listing"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ContentType != model.ContentTypeInstagram {
			t.Errorf("expected instagram content type, got %s", out.ContentType)
		}
		if !strings.Contains(out.Content, "### Generated Image") {
			t.Error("expected image section in post")
		}
		if !strings.Contains(out.Content, "https://img.example/post.png") {
			t.Error("expected image reference in post")
		}
		if imgProvider.lastAspect != AspectSquare {
			t.Errorf("expected %s aspect ratio, got %s", AspectSquare, imgProvider.lastAspect)
		}
	})

	t.Run("blocked image prompt degrades to caption-only", func(t *testing.T) {
		llmClient := &mockGeminiClient{response: geminiTextResponse(sampleCaption)}
		imgProvider := &mockImageProvider{response: imageURLResponse("https://img.example/post.png")}

		var checkedKind model.ValidationKind
		guard := &mockGuard{
			validateSafetyOnlyFunc: func(ctx context.Context, input string, kind model.ValidationKind) model.GuardrailResult {
				checkedKind = kind
				return model.GuardrailResult{Passed: false, BlockedBy: model.GuardSafety}
			},
		}

		gen := NewInstagram(textManager(llmClient), imageManager(imgProvider), guard, &mockLogger{})

		out, err := gen.Execute(ctx, Input{UserInput: "modern farmhouse listing"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if checkedKind != model.ValidationImage {
			t.Errorf("expected image validation kind, got %s", checkedKind)
		}
		if imgProvider.callCount != 0 {
			t.Error("blocked prompt must not reach the image provider")
		}
		if !strings.Contains(out.Content, "Image generation was not available") {
			t.Error("expected caption-only note")
		}
	})

	t.Run("image provider failure degrades to caption-only", func(t *testing.T) {
		llmClient := &mockGeminiClient{response: geminiTextResponse(sampleCaption)}
		imgProvider := &mockImageProvider{err: errors.New("provider down")}

		gen := NewInstagram(textManager(llmClient), imageManager(imgProvider), &mockGuard{}, &mockLogger{})

		out, err := gen.Execute(ctx, Input{UserInput: "modern farmhouse listing"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(out.Content, "### Generated Image") {
			t.Error("expected no image section")
		}
	})

	t.Run("caption failure fails the post", func(t *testing.T) {
		llmClient := &mockGeminiClient{err: errors.New("quota exceeded")}

		gen := NewInstagram(textManager(llmClient), nil, &mockGuard{}, &mockLogger{})

		if _, err := gen.Execute(ctx, Input{UserInput: "modern farmhouse listing"}); err == nil {
			t.Fatal("expected error when caption generation fails")
		}
	})

	t.Run("missing hashtags get the fallback block", func(t *testing.T) {
		llmClient := &mockGeminiClient{response: geminiTextResponse("A lovely home awaits. Call today!")}

		gen := NewInstagram(textManager(llmClient), nil, &mockGuard{}, &mockLogger{})

		out, err := gen.Execute(ctx, Input{UserInput: "cozy bungalow"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.Content, "#realestate") {
			t.Error("expected fallback hashtags appended")
		}
	})
}

func TestInstagramGenerator_ComposePost(t *testing.T) {
	ctx := context.Background()

	llmClient := &mockGeminiClient{response: geminiTextResponse(sampleCaption)}
	imgProvider := &mockImageProvider{response: imageURLResponse("https://img.example/post.png")}

	gen := NewInstagram(textManager(llmClient), imageManager(imgProvider), &mockGuard{}, &mockLogger{})

	out, err := gen.ComposePost(ctx, ComposeInput{
		ImageDescription: "sunlit kitchen with marble island",
		PropertyDetails:  map[string]interface{}{"bedrooms": 3, "price": "$450,000"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Image != "https://img.example/post.png" {
		t.Errorf("unexpected image ref: %s", out.Image)
	}
	if out.Caption == "" || strings.Contains(out.Caption, "#realestate") {
		t.Error("caption should carry body text without the hashtag block")
	}
	if !strings.HasPrefix(out.Hashtags, "#") {
		t.Errorf("expected hashtag block, got: %s", out.Hashtags)
	}
	if !strings.Contains(out.FullPost, "## Instagram Post") {
		t.Error("expected assembled markdown post")
	}
	// Property details must reach the caption prompt in stable order.
	if !strings.Contains(llmClient.lastPrompt, "**Bedrooms:** 3") || !strings.Contains(llmClient.lastPrompt, "**Price:** $450,000") {
		t.Errorf("expected property details in prompt, got: %s", llmClient.lastPrompt)
	}
}

func TestEnforceCaptionLimit(t *testing.T) {
	long := strings.Repeat("word ", 200) + "\n\n" + fallbackHashtags

	limited := enforceCaptionLimit(long, captionMaxWords)
	body, hashtags := splitCaption(limited)

	if got := wordCount(body); got > captionMaxWords+1 {
		t.Errorf("body exceeds limit: %d words", got)
	}
	if hashtags != fallbackHashtags {
		t.Error("hashtag block must survive truncation")
	}
	if !strings.HasSuffix(body, "...") {
		t.Errorf("expected ellipsis after truncation, got suffix %q", body[len(body)-5:])
	}
}
