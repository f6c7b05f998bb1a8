package imagen_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"realty-content-engine/pkg/imagen"
)

func TestClient_GenerateImages(t *testing.T) {
	var lastParams map[string]interface{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		lastParams = req["parameters"].(map[string]interface{})

		// Read mock command
		instances := req["instances"].([]interface{})
		prompt := instances[0].(map[string]interface{})["prompt"].(string)
		if prompt == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"predictions": [
				{ "bytesBase64Encoded": "aGVsbG8=", "mimeType": "image/png" },
				{ "mimeType": "image/png" }
			]
		}`))
	}))
	defer ts.Close()

	client, err := imagen.New(imagen.Config{
		APIKey: "test-api-key",
		APIURL: ts.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	ctx := context.Background()

	t.Run("Success Drops Empty Predictions", func(t *testing.T) {
		resp, err := client.GenerateImages(ctx, &imagen.Request{
			Prompt:      "modern farmhouse exterior at golden hour",
			AspectRatio: "16:9",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Images) != 1 {
			t.Fatalf("expected 1 image, got %d", len(resp.Images))
		}
		if resp.Images[0].Base64 != "aGVsbG8=" {
			t.Errorf("unexpected image data: %s", resp.Images[0].Base64)
		}
		if resp.AspectRatio != "16:9" {
			t.Errorf("unexpected aspect ratio: %s", resp.AspectRatio)
		}
		if !strings.HasPrefix(resp.Images[0].DataURI(), "data:image/png;base64,") {
			t.Errorf("unexpected data URI: %s", resp.Images[0].DataURI())
		}
	})

	t.Run("Defaults And Clamping", func(t *testing.T) {
		_, err := client.GenerateImages(ctx, &imagen.Request{
			Prompt:         "kitchen staging ideas",
			NumberOfImages: 9,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := lastParams["sampleCount"].(float64); got != 4 {
			t.Errorf("expected sampleCount clamped to 4, got %v", got)
		}
		if got := lastParams["aspectRatio"].(string); got != "1:1" {
			t.Errorf("expected default aspect ratio, got %v", got)
		}
		if got := lastParams["safetyFilterLevel"].(string); got != "block_low_and_above" {
			t.Errorf("unexpected safety filter level: %v", got)
		}
		if got := lastParams["personGeneration"].(string); got != "allow_adult" {
			t.Errorf("unexpected person generation: %v", got)
		}
	})

	t.Run("API Error", func(t *testing.T) {
		_, err := client.GenerateImages(ctx, &imagen.Request{Prompt: "cause_500"})
		if err == nil {
			t.Fatalf("expected API error")
		}
	})

	t.Run("Empty Prompt", func(t *testing.T) {
		_, err := client.GenerateImages(ctx, &imagen.Request{})
		if err == nil {
			t.Fatalf("expected prompt validation error")
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	_, err := imagen.New(imagen.Config{})
	if err == nil {
		t.Fatalf("expected missing API key error")
	}

	cfg := imagen.Config{APIKey: "k"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != imagen.DefaultModel {
		t.Errorf("expected default model, got %s", cfg.Model)
	}
	if cfg.APIURL != imagen.DefaultAPIURL {
		t.Errorf("expected default API URL, got %s", cfg.APIURL)
	}
}
