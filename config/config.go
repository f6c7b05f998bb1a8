package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Content engine specifics
	Guardrails GuardrailsConfig
	Sessions   SessionsConfig
	History    HistoryConfig
	Search     SearchConfig
	Qdrant     QdrantConfig
	Voyage     VoyageConfig
	Telegram   TelegramConfig
	Calendar   GoogleCalendarConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Image Provider Abstraction
	Image ImageConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// GuardrailsConfig controls the two-stage input validation.
type GuardrailsConfig struct {
	TopicalEnabled    bool
	SafetyEnabled     bool
	StrictMode        bool
	SemanticThreshold float64
	OnEvaluatorError  string // "allow" or "block" when a semantic evaluator fails
}

// SessionsConfig controls the in-memory conversation store.
type SessionsConfig struct {
	TTL           string // max idle age before a sweep removes a session
	SweepInterval string
	HistoryLimit  int // messages handed to handlers as context
}

// HistoryConfig controls the durable content history store.
type HistoryConfig struct {
	Path            string
	MaxItemsPerType int
}

// SearchConfig selects and configures the web search backend.
type SearchConfig struct {
	Provider string // "serpapi" or "brave"
	APIKey   string
	Engine   string
	Timeout  string
}

type QdrantConfig struct {
	URL            string
	CollectionName string
	VectorSize     int
}

type VoyageConfig struct {
	APIKey string
}

type TelegramConfig struct {
	BotToken   string
	WebhookURL string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
	Timezone        string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ImageConfig holds configuration for the image provider abstraction layer
type ImageConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
}

// ProviderConfig holds configuration for a single LLM or image provider
type ProviderConfig struct {
	Name              string `yaml:"name"`
	Enabled           bool   `yaml:"enabled"`
	Priority          int    `yaml:"priority"`
	APIKey            string `yaml:"api_key"`
	BaseURL           string `yaml:"base_url,omitempty"`
	Model             string `yaml:"model"`
	Timeout           string `yaml:"timeout"`
	RequestsPerMinute int    `yaml:"requests_per_minute,omitempty"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = viper.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Guardrails
	cfg.Guardrails.TopicalEnabled = viper.GetBool("guardrails.topical_enabled")
	cfg.Guardrails.SafetyEnabled = viper.GetBool("guardrails.safety_enabled")
	cfg.Guardrails.StrictMode = viper.GetBool("guardrails.strict_mode")
	cfg.Guardrails.SemanticThreshold = viper.GetFloat64("guardrails.semantic_threshold")
	cfg.Guardrails.OnEvaluatorError = viper.GetString("guardrails.on_evaluator_error")

	// Sessions
	cfg.Sessions.TTL = viper.GetString("sessions.ttl")
	cfg.Sessions.SweepInterval = viper.GetString("sessions.sweep_interval")
	cfg.Sessions.HistoryLimit = viper.GetInt("sessions.history_limit")

	// Content history
	cfg.History.Path = viper.GetString("history.path")
	cfg.History.MaxItemsPerType = viper.GetInt("history.max_items_per_type")

	// Web search
	cfg.Search.Provider = viper.GetString("search.provider")
	cfg.Search.APIKey = viper.GetString("search.api_key")
	cfg.Search.Engine = viper.GetString("search.engine")
	cfg.Search.Timeout = viper.GetString("search.timeout")
	if serpKey := viper.GetString("serpapi_api_key"); serpKey != "" {
		cfg.Search.APIKey = serpKey
	}

	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.CollectionName = viper.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	if qdrantURL := viper.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	// Voyage AI
	cfg.Voyage.APIKey = viper.GetString("voyage.api_key")
	if voyageKey := viper.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	cfg.Calendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.Calendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	cfg.Calendar.Timezone = viper.GetString("google_calendar.timezone")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.Calendar.CredentialsPath = googleCreds
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	cfg.LLM.Providers = loadProviders("llm.providers")

	if err := validateProviders(cfg.LLM.Providers); err != nil {
		return nil, fmt.Errorf("llm providers: %w", err)
	}

	// Image Provider Abstraction. Image providers are optional: with none
	// configured the engine still runs and image requests degrade to
	// prompt-only responses.
	cfg.Image.FallbackEnabled = viper.GetBool("image.fallback_enabled")
	cfg.Image.RetryAttempts = viper.GetInt("image.retry_attempts")
	cfg.Image.RetryDelay = viper.GetString("image.retry_delay")
	cfg.Image.Providers = loadProviders("image.providers")

	return cfg, nil
}

// loadProviders reads a providers list from the given config key.
func loadProviders(key string) []ProviderConfig {
	var providers []ProviderConfig
	if !viper.IsSet(key) {
		return providers
	}
	providersRaw := viper.Get(key)
	providersList, ok := providersRaw.([]interface{})
	if !ok {
		return providers
	}
	for _, p := range providersList {
		if providerMap, ok := p.(map[string]interface{}); ok {
			providers = append(providers, ProviderConfig{
				Name:              getStringFromMap(providerMap, "name"),
				Enabled:           getBoolFromMap(providerMap, "enabled"),
				Priority:          getIntFromMap(providerMap, "priority"),
				APIKey:            expandEnvVar(getStringFromMap(providerMap, "api_key")),
				BaseURL:           getStringFromMap(providerMap, "base_url"),
				Model:             getStringFromMap(providerMap, "model"),
				Timeout:           getStringFromMap(providerMap, "timeout"),
				RequestsPerMinute: getIntFromMap(providerMap, "requests_per_minute"),
			})
		}
	}
	return providers
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.rate_limit_per_min", 60)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Guardrails default to fully on, allowing on evaluator failure
	viper.SetDefault("guardrails.topical_enabled", true)
	viper.SetDefault("guardrails.safety_enabled", true)
	viper.SetDefault("guardrails.strict_mode", true)
	viper.SetDefault("guardrails.semantic_threshold", 0.6)
	viper.SetDefault("guardrails.on_evaluator_error", "allow")

	viper.SetDefault("sessions.ttl", "24h")
	viper.SetDefault("sessions.sweep_interval", "10m")
	viper.SetDefault("sessions.history_limit", 10)

	viper.SetDefault("history.path", "content_history.db")
	viper.SetDefault("history.max_items_per_type", 5)

	viper.SetDefault("search.provider", "serpapi")
	viper.SetDefault("search.engine", "google")
	viper.SetDefault("search.timeout", "10s")

	viper.SetDefault("google_calendar.timezone", "UTC")

	viper.SetDefault("qdrant.collection_name", "content_history")
	viper.SetDefault("qdrant.vector_size", 1024)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")

	// Image defaults
	viper.SetDefault("image.fallback_enabled", true)
	viper.SetDefault("image.retry_attempts", 2)
	viper.SetDefault("image.retry_delay", "1s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateProviders checks a provider list for the problems that would
// otherwise only surface at request time.
func validateProviders(providers []ProviderConfig) error {
	if len(providers) == 0 {
		return fmt.Errorf("no providers configured - please add a providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true

			if provider.APIKey == "" {
				fmt.Printf("Warning: provider %s has no API key configured\n", provider.Name)
			}
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
