package model

import "time"

// HistoryEntry is one persisted piece of generated content. The store keeps
// a bounded window per content type, so old entries disappear as new ones
// are appended.
type HistoryEntry struct {
	ID          int64                  `json:"id"`
	SessionID   string                 `json:"session_id"`
	ContentType ContentType            `json:"content_type"`
	Content     string                 `json:"content"`
	Prompt      string                 `json:"prompt,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// HistoryStats summarizes the persisted content history.
type HistoryStats struct {
	TotalItems        int                 `json:"total_items"`
	ItemsByType       map[ContentType]int `json:"items_by_type"`
	LatestEntry       *time.Time          `json:"latest_entry,omitempty"`
	DatabaseSizeBytes int64               `json:"database_size_bytes"`
	MaxItemsPerType   int                 `json:"max_items_per_type"`
}
