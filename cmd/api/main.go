package main

import (
	"context"
	"fmt"
	"time"

	"realty-content-engine/config"
	_ "realty-content-engine/docs" // Swagger docs
	tgDelivery "realty-content-engine/internal/content/delivery/telegram"
	"realty-content-engine/internal/content/repository"
	qdrantRepo "realty-content-engine/internal/content/repository/qdrant"
	sqliteRepo "realty-content-engine/internal/content/repository/sqlite"
	contentUC "realty-content-engine/internal/content/usecase"
	"realty-content-engine/internal/generator"
	"realty-content-engine/internal/guardrails"
	"realty-content-engine/internal/httpserver"
	"realty-content-engine/internal/middleware"
	"realty-content-engine/internal/quality"
	"realty-content-engine/internal/router"
	"realty-content-engine/internal/session"
	"realty-content-engine/pkg/datemath"
	"realty-content-engine/pkg/gcalendar"
	"realty-content-engine/pkg/imageprovider"
	"realty-content-engine/pkg/llmprovider"
	"realty-content-engine/pkg/log"
	pkgQdrant "realty-content-engine/pkg/qdrant"
	"realty-content-engine/pkg/telegram"
	"realty-content-engine/pkg/voyage"
	"realty-content-engine/pkg/websearch"
)

// @title       Realty Content Engine API
// @description AI content generation for realty marketing: guardrailed routing, multi-provider LLMs, web research, and publishing workflow.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	logger.Info(ctx, "Starting Realty Content Engine...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM provider chain
	llmProviders, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	llmManager := llmprovider.NewManager(llmProviders, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)
	logger.Infof(ctx, "LLM providers: %d configured", len(llmProviders))

	// 4. Image provider chain (optional)
	imageProviders, err := imageprovider.InitializeProviders(&cfg.Image)
	if err != nil {
		logger.Warnf(ctx, "Image providers unavailable (image requests degrade to prompt-only): %v", err)
	}
	var imageManager *imageprovider.Manager
	if len(imageProviders) > 0 {
		imageManager = imageprovider.NewManager(imageProviders, &imageprovider.Config{
			FallbackEnabled: cfg.Image.FallbackEnabled,
			RetryAttempts:   cfg.Image.RetryAttempts,
			RetryDelay:      parseDuration(cfg.Image.RetryDelay, time.Second),
		}, logger)
		logger.Infof(ctx, "Image providers: %d configured", len(imageProviders))
	}

	// 5. Web search (optional)
	var searchProvider websearch.Provider
	if cfg.Search.APIKey != "" {
		searchProvider, err = websearch.New(&cfg.Search)
		if err != nil {
			logger.Warnf(ctx, "Web search unavailable (research degrades): %v", err)
		}
	} else {
		logger.Warn(ctx, "No search API key configured, research runs without live results")
	}

	// 6. Guardrails
	guard, err := guardrails.New(guardrails.Config{
		TopicalEnabled:    cfg.Guardrails.TopicalEnabled,
		SafetyEnabled:     cfg.Guardrails.SafetyEnabled,
		StrictMode:        cfg.Guardrails.StrictMode,
		SemanticThreshold: cfg.Guardrails.SemanticThreshold,
		OnEvaluatorError:  guardrails.ErrorPolicy(cfg.Guardrails.OnEvaluatorError),
	}, llmManager, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize guardrails: ", err)
		return
	}

	// 7. Router and generator registry
	contentRouter := router.New(logger)
	registry := generator.NewRegistry(generator.Deps{
		Logger: logger,
		LLM:    llmManager,
		Images: imageManager,
		Search: searchProvider,
		Guard:  guard,
	})

	// 8. Session store
	sessions := session.New(session.Config{
		TTL:           parseDuration(cfg.Sessions.TTL, 24*time.Hour),
		SweepInterval: parseDuration(cfg.Sessions.SweepInterval, 10*time.Minute),
		HistoryLimit:  cfg.Sessions.HistoryLimit,
	}, logger)
	defer sessions.Stop()

	// 9. Durable content history
	historyRepo, err := sqliteRepo.New(cfg.History.Path, cfg.History.MaxItemsPerType, logger)
	if err != nil {
		logger.Error(ctx, "Failed to open content history store: ", err)
		return
	}
	defer historyRepo.Close()

	// 10. Semantic search index (optional)
	var vectorRepo repository.VectorRepository
	if cfg.Qdrant.URL != "" && cfg.Voyage.APIKey != "" {
		embedder, vErr := voyage.New(cfg.Voyage.APIKey)
		if vErr != nil {
			logger.Warnf(ctx, "Voyage embedder unavailable, semantic search disabled: %v", vErr)
		} else {
			qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)
			if cErr := qdrantClient.EnsureCollection(ctx, pkgQdrant.CreateCollectionRequest{
				Name: cfg.Qdrant.CollectionName,
				Vectors: pkgQdrant.VectorConfig{
					Size:     cfg.Qdrant.VectorSize,
					Distance: "Cosine",
				},
			}); cErr != nil {
				logger.Warnf(ctx, "Qdrant collection setup: %v", cErr)
			}
			vectorRepo = qdrantRepo.New(qdrantClient, embedder, cfg.Qdrant.CollectionName, logger)
			logger.Info(ctx, "Semantic search enabled (Qdrant + Voyage)")
		}
	} else {
		logger.Info(ctx, "Semantic search not configured, history search falls back to substring matching")
	}

	// 11. Calendar scheduling (optional)
	var calendarClient *gcalendar.Client
	var dateMathParser *datemath.Parser
	if cfg.Calendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.Calendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
			calendarClient = nil
		} else {
			logger.Info(ctx, "Google Calendar initialized")
		}
	}
	dateMathParser, err = datemath.NewParser(cfg.Calendar.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Calendar.Timezone, err)
		dateMathParser, _ = datemath.NewParser("UTC")
	}

	// 12. Content UseCase
	uc := contentUC.New(
		logger,
		guard,
		contentRouter,
		registry,
		sessions,
		historyRepo,
		vectorRepo,
		quality.New(logger),
		calendarClient,
		cfg.Calendar.CalendarID,
		dateMathParser,
		cfg.Calendar.Timezone,
	)

	// 13. Telegram delivery (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, uc, telegramBot)

		// Register webhook: auto-detect ngrok or fallback to manual config
		webhookURL := cfg.Telegram.WebhookURL
		if webhookURL == "" {
			ngrokURL, ngrokErr := detectNgrokURL(ctx, "http://ngrok:4040")
			if ngrokErr != nil {
				logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
			} else {
				webhookURL = ngrokURL + "/webhook/telegram"
				logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
			}
		}
		if webhookURL != "" {
			if whErr := telegramBot.SetWebhook(webhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
			}
		}
	} else {
		logger.Info(ctx, "Telegram bot token not set, webhook delivery disabled")
	}

	// 14. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		ContentUC:   uc,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerMinute: cfg.HTTPServer.RateLimitPerMin,
		},
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 15. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// parseDuration parses a config duration string, falling back to def.
func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
