package repository

import (
	"context"

	"realty-content-engine/internal/model"
)

// HistoryRepository is the interface for durable content-history access.
// Implementations keep at most a fixed number of entries per content type;
// appends evict the oldest overflow in the same transaction.
type HistoryRepository interface {
	Append(ctx context.Context, entry model.HistoryEntry) (int64, error)
	List(ctx context.Context, opt ListOptions) ([]model.HistoryEntry, error)
	GetByID(ctx context.Context, id int64) (model.HistoryEntry, error)
	Search(ctx context.Context, opt SearchOptions) ([]model.HistoryEntry, error)
	Types(ctx context.Context) ([]model.ContentType, error)
	Count(ctx context.Context, contentType model.ContentType) (int, error)
	Delete(ctx context.Context, contentType model.ContentType, id int64) error
	Clear(ctx context.Context, contentType model.ContentType) (int64, error)
	ClearAll(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (model.HistoryStats, error)
	Close() error
}

// ListOptions holds the parameters for listing history entries.
// Zero-value fields are omitted from the filter, so an empty ContentType
// lists across every type.
type ListOptions struct {
	ContentType model.ContentType // Filter by content type (optional)
	SessionID   string            // Filter by originating session (optional)
	Limit       int               // Max number of results (default 5)
}

// SearchOptions holds the parameters for text search over stored content.
type SearchOptions struct {
	Term        string            // Substring to match inside content
	ContentType model.ContentType // Filter by content type (optional)
	Limit       int               // Max number of results (default 10)
}

// VectorRepository handles vector operations (Qdrant).
type VectorRepository interface {
	EmbedEntry(ctx context.Context, entry model.HistoryEntry) error
	SearchEntries(ctx context.Context, opt VectorSearchOptions) ([]VectorResult, error)
	DeleteEntry(ctx context.Context, contentType model.ContentType, id int64) error
}

// VectorSearchOptions defines semantic search parameters.
type VectorSearchOptions struct {
	Query       string            // Natural language query
	Limit       int               // Top-K results
	ContentType model.ContentType // Filter by content type (optional)
}

// VectorResult represents a semantic search result.
type VectorResult struct {
	EntryID int64
	Score   float64
	Payload map[string]interface{}
}
