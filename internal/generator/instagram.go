package generator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"realty-content-engine/internal/guardrails"
	"realty-content-engine/internal/model"
	"realty-content-engine/internal/router"
	"realty-content-engine/pkg/imageprovider"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
)

// InstagramGenerator produces social posts: an optional 1:1 property
// image plus a caption with hashtags. Image failures downgrade the post
// to caption-only; the caption is always generated.
type InstagramGenerator struct {
	l      pkgLog.Logger
	llm    *llmprovider.Manager
	images *imageprovider.Manager
	guard  guardrails.UseCase
}

// NewInstagram creates an InstagramGenerator. images may be nil.
func NewInstagram(llm *llmprovider.Manager, images *imageprovider.Manager, guard guardrails.UseCase, l pkgLog.Logger) *InstagramGenerator {
	return &InstagramGenerator{l: l, llm: llm, images: images, guard: guard}
}

func (g *InstagramGenerator) Name() string  { return router.HandlerInstagram }
func (g *InstagramGenerator) Label() string { return "Instagram post generation" }

// Execute runs the two-step social-post sub-flow: safety-check the image
// prompt, generate the square image when allowed, then always generate
// the caption and assemble the combined markdown post.
func (g *InstagramGenerator) Execute(ctx context.Context, in Input) (Output, error) {
	imagePrompt := fmt.Sprintf("Photorealistic real estate image for Instagram: %s", in.UserInput)

	imageRef := g.postImage(ctx, imagePrompt)

	caption, err := g.caption(ctx, in.UserInput, nil)
	if err != nil {
		return Output{}, err
	}

	return Output{
		Content:     assembleInstagramPost(imageRef, caption),
		ContentType: model.ContentTypeInstagram,
		Metadata: map[string]interface{}{
			"image_generated": imageRef != "",
			"caption_words":   wordCount(captionBody(caption)),
		},
	}, nil
}

// ComposeInput is the direct social-post request that bypasses routing.
type ComposeInput struct {
	ImageDescription string
	PropertyDetails  map[string]interface{}
}

// ComposeOutput carries the parts of an assembled post separately so
// callers can publish image and caption independently.
type ComposeOutput struct {
	Image    string
	Caption  string
	Hashtags string
	FullPost string
}

// ComposePost builds a complete post from a caller-supplied image
// description and structured property details. Guardrail validation is
// the caller's responsibility; this method only generates.
func (g *InstagramGenerator) ComposePost(ctx context.Context, in ComposeInput) (ComposeOutput, error) {
	imagePrompt := fmt.Sprintf("Generate a real estate image: %s", in.ImageDescription)
	imageRef := g.postImage(ctx, imagePrompt)

	caption, err := g.caption(ctx,
		fmt.Sprintf("Instagram caption for real estate image: %s", in.ImageDescription),
		in.PropertyDetails)
	if err != nil {
		return ComposeOutput{}, err
	}

	body, hashtags := splitCaption(caption)

	return ComposeOutput{
		Image:    imageRef,
		Caption:  body,
		Hashtags: hashtags,
		FullPost: assembleInstagramPost(imageRef, caption),
	}, nil
}

// postImage safety-checks the prompt (safety only, never topicality)
// and generates a square image. Any failure returns an empty ref.
func (g *InstagramGenerator) postImage(ctx context.Context, prompt string) string {
	if g.images == nil || !g.images.Available() {
		return ""
	}

	if g.guard != nil {
		check := g.guard.ValidateSafetyOnly(ctx, prompt, model.ValidationImage)
		if !check.Passed {
			g.l.Warnf(ctx, "%s: image prompt blocked by safety guard, switching to caption-only", LogPrefixInstagram)
			return ""
		}
	}

	resp, err := g.images.GenerateImage(ctx, &imageprovider.Request{
		Prompt:      prompt,
		AspectRatio: AspectSquare,
	})
	if err != nil {
		g.l.Warnf(ctx, "%s: image generation failed, switching to caption-only: %v", LogPrefixInstagram, err)
		return ""
	}
	if len(resp.Images) == 0 {
		return ""
	}
	return resp.Images[0].Ref()
}

// caption generates the caption text, enforcing the word limit and
// guaranteeing a hashtag block.
func (g *InstagramGenerator) caption(ctx context.Context, request string, details map[string]interface{}) (string, error) {
	prompt := fmt.Sprintf(captionPromptTemplate, request, detailLines(details), captionMaxWords)

	content, err := generateText(ctx, g.llm, systemPromptInstagram, prompt, defaultTemperature, postMaxTokens)
	if err != nil {
		return "", err
	}

	if strings.Count(content, "#") < minHashtagCount {
		content = content + "\n\n" + fallbackHashtags
	}

	return enforceCaptionLimit(content, captionMaxWords), nil
}

// detailLines renders property details as prompt bullet lines in a
// stable key order.
func detailLines(details map[string]interface{}) string {
	if len(details) == 0 {
		return ""
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "**%s:** %v\n", titleCase(strings.ReplaceAll(k, "_", " ")), details[k])
	}
	return sb.String()
}

// titleCase capitalizes the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// assembleInstagramPost combines the image reference and caption into
// a single markdown document. Without an image the post degrades to
// caption-only with an explanatory note.
func assembleInstagramPost(imageRef, caption string) string {
	if imageRef != "" {
		return fmt.Sprintf("## Instagram Post\n\n### Generated Image\n\n![Instagram Image](%s)\n\n### Caption\n\n%s\n", imageRef, caption)
	}
	return fmt.Sprintf("## Instagram Post\n\n### Caption\n\n%s\n\n*Note: Image generation was not available for this request.*\n", caption)
}

// splitCaption separates the caption body from its trailing hashtag
// block.
func splitCaption(caption string) (body, hashtags string) {
	parts := strings.Split(caption, "\n\n")
	var bodyParts []string
	for _, part := range parts {
		if strings.Count(part, "#") >= minHashtagCount {
			hashtags = strings.TrimSpace(part)
			continue
		}
		bodyParts = append(bodyParts, part)
	}
	body = strings.TrimSpace(strings.Join(bodyParts, "\n\n"))
	if hashtags == "" {
		hashtags = fallbackHashtags
	}
	return body, hashtags
}

// captionBody returns the caption without its hashtag block.
func captionBody(caption string) string {
	body, _ := splitCaption(caption)
	return body
}

// enforceCaptionLimit truncates the caption body to maxWords while
// keeping the hashtag block intact.
func enforceCaptionLimit(caption string, maxWords int) string {
	body, hashtags := splitCaption(caption)

	words := strings.Fields(body)
	if len(words) > maxWords {
		body = strings.Join(words[:maxWords], " ")
		if !strings.HasSuffix(body, ".") && !strings.HasSuffix(body, "!") && !strings.HasSuffix(body, "?") {
			body = strings.TrimRight(body, ",;:-") + "..."
		}
	}

	return body + "\n\n" + hashtags
}
