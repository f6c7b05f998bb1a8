package generator

import (
	"context"
	"fmt"

	"realty-content-engine/internal/guardrails"
	"realty-content-engine/internal/model"
	"realty-content-engine/internal/router"
	"realty-content-engine/pkg/imageprovider"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
)

const blogTargetWords = 1500

// BlogGenerator writes long-form SEO content and decorates it with a
// generated header image. The image path is strictly best-effort: a
// blocked or failed image never fails the blog.
type BlogGenerator struct {
	l       pkgLog.Logger
	llm     *llmprovider.Manager
	images  *imageprovider.Manager
	prompts *ImagePromptBuilder
	guard   guardrails.UseCase
}

// NewBlog creates a BlogGenerator. images may be nil.
func NewBlog(llm *llmprovider.Manager, images *imageprovider.Manager, prompts *ImagePromptBuilder, guard guardrails.UseCase, l pkgLog.Logger) *BlogGenerator {
	return &BlogGenerator{l: l, llm: llm, images: images, prompts: prompts, guard: guard}
}

func (g *BlogGenerator) Name() string  { return router.HandlerBlog }
func (g *BlogGenerator) Label() string { return "Blog writing" }

// Execute generates the blog text first, then attempts the header image
// sub-flow: derive an image prompt from title and summary, validate it,
// generate a 16:9 image, and prepend the markdown reference on success.
func (g *BlogGenerator) Execute(ctx context.Context, in Input) (Output, error) {
	prompt := fmt.Sprintf(blogPromptTemplate, in.UserInput, blogTargetWords)
	if research := researchContext(in.Context); research != "" {
		prompt += fmt.Sprintf(blogResearchContextTemplate, research)
	}

	content, err := generateText(ctx, g.llm, systemPromptBlog, prompt, defaultTemperature, longFormMaxTokens)
	if err != nil {
		return Output{}, err
	}

	title := extractTitle(content, in.UserInput)
	summary := extractSummary(content, in.UserInput)

	imageRef, imagePrompt := g.headerImage(ctx, title, summary)
	if imageRef != "" {
		content = fmt.Sprintf("![%s](%s)\n\n%s", title, imageRef, content)
	}

	return Output{
		Content:     content,
		ContentType: model.ContentTypeBlog,
		Metadata: map[string]interface{}{
			"title":           title,
			"word_count":      wordCount(content),
			"image_generated": imageRef != "",
			"image_prompt":    imagePrompt,
		},
	}, nil
}

// headerImage runs the two-step image sub-flow. Every failure mode
// (no provider, guardrail block, provider error) returns an empty ref.
func (g *BlogGenerator) headerImage(ctx context.Context, title, summary string) (ref, prompt string) {
	if g.images == nil || !g.images.Available() {
		return "", ""
	}

	prompt = g.prompts.FromSummary(ctx, title, summary, AspectBlogHeader)

	if g.guard != nil {
		check := g.guard.ValidateImageRequest(ctx, prompt)
		if !check.Passed {
			g.l.Warnf(ctx, "%s: header image prompt blocked by guardrails, continuing text-only", LogPrefixBlog)
			return "", prompt
		}
	}

	resp, err := g.images.GenerateImage(ctx, &imageprovider.Request{
		Prompt:      prompt,
		AspectRatio: AspectBlogHeader,
	})
	if err != nil {
		g.l.Warnf(ctx, "%s: header image generation failed, continuing text-only: %v", LogPrefixBlog, err)
		return "", prompt
	}
	if len(resp.Images) == 0 {
		return "", prompt
	}

	return resp.Images[0].Ref(), prompt
}

// researchContext renders prior research results into prompt-ready text.
func researchContext(contextMap map[string]interface{}) string {
	if contextMap == nil {
		return ""
	}
	switch v := contextMap["research_results"].(type) {
	case string:
		return v
	case map[string]interface{}:
		if summary, ok := v["summary"].(string); ok {
			return summary
		}
	}
	return ""
}
