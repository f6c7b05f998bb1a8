package imagen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

type imagenImpl struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// newImagenImpl creates a new Imagen implementation
func newImagenImpl(cfg Config) *imagenImpl {
	g := &imagenImpl{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		apiURL:     cfg.APIURL,
		httpClient: cfg.HTTPClient,
	}
	if cfg.RequestsPerMinute > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}
	return g
}

// GenerateImages sends an image generation request to the Imagen API
func (g *imagenImpl) GenerateImages(ctx context.Context, req *Request) (*Response, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("imagen: rate limiter: %w", err)
		}
	}
	if req.Prompt == "" {
		return nil, fmt.Errorf("imagen: prompt is required")
	}

	predictReq := g.transformRequest(req)
	predictResp, err := g.callAPI(ctx, predictReq)
	if err != nil {
		return nil, err
	}
	return g.transformResponse(predictResp, predictReq.Parameters.AspectRatio), nil
}

// Model returns the model being used
func (g *imagenImpl) Model() string {
	return g.model
}

// callAPI sends a request to the Imagen predict endpoint
func (g *imagenImpl) callAPI(ctx context.Context, req predictRequest) (*predictResponse, error) {
	url := fmt.Sprintf("%s/models/%s:predict?key=%s", g.apiURL, g.model, g.apiKey)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("imagen: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("imagen: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("imagen: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("imagen: API error %d: %s", resp.StatusCode, string(raw))
	}

	var result predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("imagen: failed to decode response: %w", err)
	}

	return &result, nil
}

// transformRequest converts request to predict API format, clamping the
// sample count to the API range and defaulting the aspect ratio.
func (g *imagenImpl) transformRequest(req *Request) predictRequest {
	count := req.NumberOfImages
	if count < 1 {
		count = 1
	}
	if count > MaxImagesPerRequest {
		count = MaxImagesPerRequest
	}

	aspect := req.AspectRatio
	if aspect == "" {
		aspect = DefaultAspectRatio
	}

	return predictRequest{
		Instances: []predictInstance{{Prompt: req.Prompt}},
		Parameters: predictParameters{
			SampleCount:       count,
			AspectRatio:       aspect,
			SafetyFilterLevel: SafetyFilterLevel,
			PersonGeneration:  PersonGeneration,
			NegativePrompt:    req.NegativePrompt,
		},
	}
}

// transformResponse converts predict API response to standard format.
// Predictions without image bytes are dropped.
func (g *imagenImpl) transformResponse(resp *predictResponse, aspectRatio string) *Response {
	images := make([]Image, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		if p.BytesBase64Encoded == "" {
			continue
		}
		mime := p.MimeType
		if mime == "" {
			mime = "image/png"
		}
		images = append(images, Image{Base64: p.BytesBase64Encoded, MimeType: mime})
	}

	return &Response{
		Images:      images,
		Model:       g.model,
		AspectRatio: aspectRatio,
	}
}
