package imageprovider

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	ooption "github.com/openai/openai-go/option"

	"realty-content-engine/pkg/imagen"
)

// ImagenAdapter adapts pkg/imagen to imageprovider.Provider interface
type ImagenAdapter struct {
	client imagen.IImagen
}

// NewImagenAdapter creates a new Imagen adapter
func NewImagenAdapter(client imagen.IImagen) *ImagenAdapter {
	return &ImagenAdapter{client: client}
}

// GenerateImage implements Provider interface
func (a *ImagenAdapter) GenerateImage(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateImages(ctx, &imagen.Request{
		Prompt:         req.Prompt,
		NegativePrompt: req.NegativePrompt,
		AspectRatio:    req.AspectRatio,
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Images) == 0 {
		return nil, fmt.Errorf("imagen: no image data returned")
	}

	images := make([]Image, len(resp.Images))
	for i, img := range resp.Images {
		images[i] = Image{Base64: img.Base64, MimeType: img.MimeType}
	}

	return &Response{
		Images:       images,
		ProviderName: "imagen",
		ModelName:    a.client.Model(),
	}, nil
}

// Name returns provider name
func (a *ImagenAdapter) Name() string {
	return "imagen"
}

// Model returns model name
func (a *ImagenAdapter) Model() string {
	return a.client.Model()
}

// DalleAdapter adapts the OpenAI SDK to imageprovider.Provider interface
type DalleAdapter struct {
	client openai.Client
	model  string
}

// NewDalleAdapter creates a new DALL-E adapter
func NewDalleAdapter(apiKey, model, baseURL string) *DalleAdapter {
	opts := []ooption.RequestOption{ooption.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, ooption.WithBaseURL(baseURL))
	}
	return &DalleAdapter{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// GenerateImage implements Provider interface
func (a *DalleAdapter) GenerateImage(ctx context.Context, req *Request) (*Response, error) {
	params := openai.ImageGenerateParams{
		Prompt:  req.Prompt,
		Model:   openai.ImageModel(a.model),
		N:       openai.Int(1), // DALL-E 3 only supports n=1
		Size:    openai.ImageGenerateParamsSize(dalleSize(req.AspectRatio)),
		Quality: openai.ImageGenerateParamsQuality(dalleQuality(req.Quality)),
		Style:   openai.ImageGenerateParamsStyle(dalleStyle(req.Style)),
	}

	resp, err := a.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("dalle: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("dalle: no image data returned")
	}

	data := resp.Data[0]
	return &Response{
		Images: []Image{
			{URL: data.URL, Base64: data.B64JSON, MimeType: "image/png"},
		},
		ProviderName:  "dalle",
		ModelName:     a.model,
		RevisedPrompt: data.RevisedPrompt,
	}, nil
}

// Name returns provider name
func (a *DalleAdapter) Name() string {
	return "dalle"
}

// Model returns model name
func (a *DalleAdapter) Model() string {
	return a.model
}

// dalleSize maps a normalized aspect ratio to the nearest supported
// DALL-E 3 size (1024x1024, 1792x1024, 1024x1792).
func dalleSize(aspectRatio string) string {
	switch aspectRatio {
	case "16:9", "4:3":
		return "1792x1024"
	case "9:16", "3:4":
		return "1024x1792"
	default:
		return "1024x1024"
	}
}

func dalleQuality(quality string) string {
	if quality == "hd" {
		return "hd"
	}
	return "standard"
}

func dalleStyle(style string) string {
	if style == "natural" {
		return "natural"
	}
	return "vivid"
}
