package websearch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"realty-content-engine/config"
)

// ErrNotConfigured indicates no search provider is configured.
var ErrNotConfigured = errors.New("web search is not configured")

// Provider performs web searches for the research pipeline.
type Provider interface {
	// Search runs a web search and returns ranked results.
	Search(ctx context.Context, q Query) ([]Result, error)

	// RelatedQuestions returns "People Also Ask" entries for a query.
	// Providers without this feature return an empty slice.
	RelatedQuestions(ctx context.Context, query string) ([]Question, error)

	// Name returns the provider name.
	Name() string
}

// New selects a search provider from configuration.
// A missing API key returns ErrNotConfigured so callers can degrade
// to generation without research context.
func New(cfg *config.SearchConfig) (Provider, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	timeout := DefaultTimeout
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("websearch: invalid timeout %q: %w", cfg.Timeout, err)
		}
		timeout = d
	}
	httpClient := &http.Client{Timeout: timeout}

	switch cfg.Provider {
	case "", "serpapi":
		s := NewSerpAPI(cfg.APIKey).WithHTTPClient(httpClient)
		if cfg.Engine != "" {
			s = s.WithEngine(cfg.Engine)
		}
		return s, nil
	case "brave":
		return NewBrave(cfg.APIKey).WithHTTPClient(httpClient), nil
	default:
		return nil, fmt.Errorf("websearch: unknown provider %q", cfg.Provider)
	}
}
