package main

import (
	"context"
	"fmt"
	"os"

	"realty-content-engine/config"
	"realty-content-engine/internal/content/repository"
	qdrantRepo "realty-content-engine/internal/content/repository/qdrant"
	sqliteRepo "realty-content-engine/internal/content/repository/sqlite"
	"realty-content-engine/pkg/log"
	pkgQdrant "realty-content-engine/pkg/qdrant"
	"realty-content-engine/pkg/voyage"
)

// Backfills the Qdrant collection with embeddings for every history entry
// already stored in SQLite. Run once after enabling semantic search on an
// existing installation.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/backfill-embeddings/main.go <path/to/config.yaml>")
		fmt.Println("Example: go run scripts/backfill-embeddings/main.go config/config.yaml")
		os.Exit(1)
	}
	configPath := os.Args[1]

	// Load config
	os.Setenv("CONFIG_PATH", configPath)
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize Logger
	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	if cfg.Qdrant.URL == "" || cfg.Voyage.APIKey == "" {
		logger.Fatal(ctx, "Both qdrant.url and voyage.api_key must be configured for backfill")
	}

	// Initialize clients
	historyRepo, err := sqliteRepo.New(cfg.History.Path, cfg.History.MaxItemsPerType, logger)
	if err != nil {
		logger.Fatalf(ctx, "Failed to open history store: %v", err)
	}
	defer historyRepo.Close()

	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)
	embeddingClient, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Voyage API: %v", err)
	}
	vectorRepo := qdrantRepo.New(qdrantClient, embeddingClient, cfg.Qdrant.CollectionName, logger)

	if err := qdrantClient.EnsureCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name: cfg.Qdrant.CollectionName,
		Vectors: pkgQdrant.VectorConfig{
			Size:     cfg.Qdrant.VectorSize,
			Distance: "Cosine",
		},
	}); err != nil {
		logger.Warnf(ctx, "Collection setup: %v", err)
	}

	logger.Info(ctx, "Starting backfill process...")

	// Fetch every stored entry across all content types
	entries, err := historyRepo.List(ctx, repository.ListOptions{
		Limit: 10000,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to list history entries: %v", err)
	}

	logger.Infof(ctx, "Found %d entries to backfill to Qdrant", len(entries))

	successCount := 0
	// Embed each entry
	for i, entry := range entries {
		if err := vectorRepo.EmbedEntry(ctx, entry); err != nil {
			logger.Errorf(ctx, "Failed to embed entry %d: %v", entry.ID, err)
			continue
		}
		logger.Infof(ctx, "Embedded entry %d/%d: [%s] %s", i+1, len(entries), entry.ContentType, entry.Prompt)
		successCount++
	}

	logger.Infof(ctx, "Backfill complete! %d/%d entries successfully embedded.", successCount, len(entries))
}
