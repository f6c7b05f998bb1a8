package imagen

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds the Imagen client configuration.
type Config struct {
	APIKey  string
	Model   string
	APIURL  string
	Timeout time.Duration

	// RequestsPerMinute throttles outgoing calls client-side.
	// Zero disables throttling.
	RequestsPerMinute int

	// HTTPClient allows injecting a custom client. Optional.
	HTTPClient *http.Client
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("imagen: API key is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return nil
}

// Request is a normalized image generation request.
type Request struct {
	Prompt         string
	NegativePrompt string
	AspectRatio    string // "1:1", "16:9", "9:16", "4:3", "3:4"
	NumberOfImages int    // 1-4, clamped
}

// Image is one generated image.
type Image struct {
	Base64   string
	MimeType string
}

// DataURI renders the image as a data URI for direct embedding.
func (i Image) DataURI() string {
	mime := i.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, i.Base64)
}

// Response is a normalized image generation response.
type Response struct {
	Images      []Image
	Model       string
	AspectRatio string
}

// Wire types for the predict endpoint.

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount       int    `json:"sampleCount"`
	AspectRatio       string `json:"aspectRatio"`
	SafetyFilterLevel string `json:"safetyFilterLevel"`
	PersonGeneration  string `json:"personGeneration"`
	NegativePrompt    string `json:"negativePrompt,omitempty"`
}

type predictResponse struct {
	Predictions []prediction `json:"predictions"`
}

type prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}
