package generator

import (
	"context"
	"fmt"
	"strings"

	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
)

// ImagePromptBuilder derives optimized image-generation prompts from
// already-written content. It is the shared sub-capability used by the
// blog and image generators before any image call is made.
type ImagePromptBuilder struct {
	l   pkgLog.Logger
	llm *llmprovider.Manager
}

// NewImagePromptBuilder creates an ImagePromptBuilder.
func NewImagePromptBuilder(llm *llmprovider.Manager, l pkgLog.Logger) *ImagePromptBuilder {
	return &ImagePromptBuilder{l: l, llm: llm}
}

// FromSummary builds an image prompt from a title and summary. When the
// LLM is unavailable or fails, a deterministic fallback prompt keeps the
// image path alive.
func (b *ImagePromptBuilder) FromSummary(ctx context.Context, title, summary, aspectRatio string) string {
	prompt := fmt.Sprintf(imagePromptFromSummaryTemplate, title, summary, aspectRatio)

	text, err := generateText(ctx, b.llm, systemPromptImagePrompt, prompt, promptTemperature, promptMaxTokens)
	if err != nil {
		b.l.Warnf(ctx, "%s: falling back to template prompt: %v", LogPrefixImagePrompt, err)
		return b.fallback(title)
	}

	cleaned := cleanImagePrompt(text)
	b.l.Infof(ctx, "%s: derived prompt: %s", LogPrefixImagePrompt, truncatePreview(cleaned, 100))
	return cleaned
}

// Optimize rewrites a raw user image request into a detailed prompt.
func (b *ImagePromptBuilder) Optimize(ctx context.Context, userInput string) string {
	prompt := fmt.Sprintf(imagePromptOptimizeTemplate, userInput)

	text, err := generateText(ctx, b.llm, systemPromptImagePrompt, prompt, promptTemperature, promptMaxTokens)
	if err != nil {
		b.l.Warnf(ctx, "%s: falling back to raw request: %v", LogPrefixImagePrompt, err)
		return b.fallback(userInput)
	}
	return cleanImagePrompt(text)
}

func (b *ImagePromptBuilder) fallback(subject string) string {
	return fmt.Sprintf("Professional real estate photograph illustrating %s. "+
		"Bright natural lighting, clean modern composition, photorealistic, "+
		"high resolution, no text or watermarks.", plainText(subject))
}

// cleanImagePrompt strips quotes and prefixes models sometimes wrap
// around the prompt they were asked to output bare.
func cleanImagePrompt(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	for _, prefix := range []string{"Image prompt:", "Prompt:", "Here is the prompt:"} {
		if strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix)) {
			s = strings.TrimSpace(s[len(prefix):])
		}
	}
	return s
}
