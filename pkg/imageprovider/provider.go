package imageprovider

import (
	"context"
	"fmt"
)

// Provider defines the interface for image generation providers
type Provider interface {
	// GenerateImage sends a generation request and returns a response
	GenerateImage(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "imagen", "dalle")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized image generation request
type Request struct {
	Prompt         string
	NegativePrompt string // Imagen only; DALL-E has no negative prompt
	AspectRatio    string // "1:1", "16:9", "9:16", "4:3", "3:4"
	Quality        string // DALL-E only: "standard" or "hd"
	Style          string // DALL-E only: "vivid" or "natural"
}

// Image is one generated image, carried either as a hosted URL or an
// inline base64 payload depending on the provider.
type Image struct {
	URL      string
	Base64   string
	MimeType string
}

// Ref returns the usable reference for the image: a data URI when the
// provider returned bytes, the hosted URL otherwise.
func (i Image) Ref() string {
	if i.Base64 != "" {
		mime := i.MimeType
		if mime == "" {
			mime = "image/png"
		}
		return fmt.Sprintf("data:%s;base64,%s", mime, i.Base64)
	}
	return i.URL
}

// Response represents a normalized image generation response
type Response struct {
	Images        []Image
	ProviderName  string
	ModelName     string
	RevisedPrompt string // DALL-E rewrites prompts; empty for Imagen
}
