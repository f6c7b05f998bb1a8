package imagen

import "context"

// IImagen defines the interface for the Imagen API client.
// Implementations are safe for concurrent use.
type IImagen interface {
	// GenerateImages sends an image generation request to the Imagen API
	GenerateImages(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model being used
	Model() string
}

// New creates a new Imagen client with the given configuration
func New(cfg Config) (IImagen, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newImagenImpl(cfg), nil
}
