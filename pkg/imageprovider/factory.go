package imageprovider

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"realty-content-engine/config"
	"realty-content-engine/pkg/imagen"
)

// InitializeProviders creates Provider instances from config.ImageConfig
// Returns providers sorted by priority (ascending) with disabled providers filtered out.
// An empty provider list is not an error: image generation is optional and
// the engine degrades to prompt-only responses without it.
func InitializeProviders(cfg *config.ImageConfig) ([]Provider, error) {
	if cfg == nil || len(cfg.Providers) == 0 {
		return nil, nil
	}

	var enabledProviders []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabledProviders = append(enabledProviders, p)
		}
	}
	if len(enabledProviders) == 0 {
		return nil, nil
	}

	// Sort by priority (ascending order)
	sort.Slice(enabledProviders, func(i, j int) bool {
		return enabledProviders[i].Priority < enabledProviders[j].Priority
	})

	// Build provider instances - skip failed ones instead of failing entirely
	var providers []Provider
	var initErrors []string

	for _, p := range enabledProviders {
		provider, err := createProvider(p)
		if err != nil {
			errMsg := fmt.Sprintf("failed to initialize image provider %s (priority %d): %v", p.Name, p.Priority, err)
			initErrors = append(initErrors, errMsg)
			fmt.Printf("Warning: %s\n", errMsg)
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 && len(initErrors) > 0 {
		return nil, fmt.Errorf("no image providers successfully initialized: %s", strings.Join(initErrors, "; "))
	}

	return providers, nil
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("image provider %s: API key is required", cfg.Name)
	}

	switch cfg.Name {
	case "imagen", "google":
		var timeout time.Duration
		if cfg.Timeout != "" {
			timeout, _ = time.ParseDuration(cfg.Timeout)
		}
		client, err := imagen.New(imagen.Config{
			APIKey:            cfg.APIKey,
			Model:             cfg.Model,
			APIURL:            cfg.BaseURL,
			Timeout:           timeout,
			RequestsPerMinute: cfg.RequestsPerMinute,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create imagen client: %w", err)
		}
		return NewImagenAdapter(client), nil

	case "dalle", "openai":
		model := cfg.Model
		if model == "" {
			model = "dall-e-3"
		}
		return NewDalleAdapter(cfg.APIKey, model, cfg.BaseURL), nil

	default:
		return nil, fmt.Errorf("unknown image provider: %s", cfg.Name)
	}
}
