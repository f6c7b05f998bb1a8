package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	ngrokDetectAttempts = 10
	ngrokDetectInterval = 3 * time.Second
)

// ngrokTunnelsResponse matches the /api/tunnels response from the ngrok local API.
type ngrokTunnelsResponse struct {
	Tunnels []ngrokTunnel `json:"tunnels"`
}

type ngrokTunnel struct {
	PublicURL string `json:"public_url"`
	Proto     string `json:"proto"`
}

// detectNgrokURL polls the ngrok local API for a public tunnel URL so the
// Telegram webhook can self-register in dev. Retries cover the window
// where ngrok is still establishing its tunnel.
func detectNgrokURL(ctx context.Context, ngrokAPIBase string) (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	for attempt := 1; attempt <= ngrokDetectAttempts; attempt++ {
		publicURL, err := fetchTunnelURL(ctx, client, ngrokAPIBase)
		if err == nil && publicURL != "" {
			return publicURL, nil
		}
		if err != nil && attempt == ngrokDetectAttempts {
			return "", fmt.Errorf("ngrok API not reachable after %d attempts: %w", ngrokDetectAttempts, err)
		}

		// Tunnel not up yet
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(ngrokDetectInterval):
		}
	}

	return "", fmt.Errorf("ngrok has no active tunnels after %d attempts", ngrokDetectAttempts)
}

// fetchTunnelURL queries /api/tunnels once, preferring an HTTPS tunnel.
// Returns "" without error when ngrok is up but has no tunnels yet.
func fetchTunnelURL(ctx context.Context, client *http.Client, apiBase string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"/api/tunnels", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create ngrok API request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tunnels ngrokTunnelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tunnels); err != nil {
		return "", fmt.Errorf("failed to decode ngrok API response: %w", err)
	}

	for _, t := range tunnels.Tunnels {
		if t.Proto == "https" {
			return t.PublicURL, nil
		}
	}
	if len(tunnels.Tunnels) > 0 {
		return tunnels.Tunnels[0].PublicURL, nil
	}
	return "", nil
}
