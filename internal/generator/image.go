package generator

import (
	"context"
	"fmt"

	"realty-content-engine/internal/model"
	"realty-content-engine/internal/router"
	"realty-content-engine/pkg/imageprovider"
	pkgLog "realty-content-engine/pkg/log"
	"realty-content-engine/pkg/llmprovider"
)

// supportedAspectRatios restricts caller-supplied ratios to what the
// image providers accept.
var supportedAspectRatios = map[string]bool{
	"1:1": true, "16:9": true, "9:16": true, "4:3": true, "3:4": true,
}

// ImageGenerator produces standalone marketing visuals. The raw request
// is first rewritten into a detailed prompt, then handed to the image
// provider manager.
type ImageGenerator struct {
	l       pkgLog.Logger
	llm     *llmprovider.Manager
	images  *imageprovider.Manager
	prompts *ImagePromptBuilder
}

// NewImage creates an ImageGenerator. images may be nil, in which case
// Execute returns the optimized prompt instead of an image.
func NewImage(llm *llmprovider.Manager, images *imageprovider.Manager, prompts *ImagePromptBuilder, l pkgLog.Logger) *ImageGenerator {
	return &ImageGenerator{l: l, llm: llm, images: images, prompts: prompts}
}

func (g *ImageGenerator) Name() string  { return router.HandlerImage }
func (g *ImageGenerator) Label() string { return "Image generation" }

func (g *ImageGenerator) Execute(ctx context.Context, in Input) (Output, error) {
	aspectRatio := AspectSquare
	if v, ok := in.Context["aspect_ratio"].(string); ok && supportedAspectRatios[v] {
		aspectRatio = v
	}

	prompt := g.prompts.Optimize(ctx, in.UserInput)

	if g.images == nil || !g.images.Available() {
		g.l.Warnf(ctx, "%s: no image provider configured, returning prompt only", LogPrefixImage)
		return Output{
			Content: fmt.Sprintf("## Image Prompt\n\n%s\n\n*Note: Image generation is not configured. "+
				"Use the prompt above with your image tool of choice.*\n", prompt),
			ContentType: model.ContentTypeImage,
			Metadata: map[string]interface{}{
				"image_generated": false,
				"image_prompt":    prompt,
			},
		}, nil
	}

	resp, err := g.images.GenerateImage(ctx, &imageprovider.Request{
		Prompt:      prompt,
		AspectRatio: aspectRatio,
	})
	if err != nil {
		return Output{}, err
	}
	if len(resp.Images) == 0 {
		return Output{}, ErrEmptyGeneration
	}

	ref := resp.Images[0].Ref()
	content := fmt.Sprintf("## Generated Image\n\n![Generated Image](%s)\n\n**Prompt:** %s\n", ref, prompt)

	return Output{
		Content:     content,
		ContentType: model.ContentTypeImage,
		Metadata: map[string]interface{}{
			"image_generated": true,
			"image_prompt":    prompt,
			"aspect_ratio":    aspectRatio,
			"provider":        resp.ProviderName,
		},
	}, nil
}
