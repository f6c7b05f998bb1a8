package qdrant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"realty-content-engine/internal/content/repository"
	"realty-content-engine/internal/model"
	pkgLog "realty-content-engine/pkg/log"
	pkgQdrant "realty-content-engine/pkg/qdrant"
	"realty-content-engine/pkg/voyage"
)

type implRepository struct {
	client         *pkgQdrant.Client
	embedder       *voyage.Client
	collectionName string
	l              pkgLog.Logger
}

// New creates a new Qdrant repository.
func New(client *pkgQdrant.Client, embedder *voyage.Client, collectionName string, l pkgLog.Logger) repository.VectorRepository {
	return &implRepository{
		client:         client,
		embedder:       embedder,
		collectionName: collectionName,
		l:              l,
	}
}

// EmbedEntry generates an embedding for a history entry and stores it in Qdrant.
func (r *implRepository) EmbedEntry(ctx context.Context, entry model.HistoryEntry) error {
	// Embed prompt + type + lead paragraphs, NOT the full piece.
	// A full blog post dilutes semantic density and hurts search accuracy.
	textToEmbed := buildEmbeddingText(entry)

	vectors, err := r.embedder.EmbedDocuments(ctx, []string{textToEmbed})
	if err != nil || len(vectors) == 0 {
		r.l.Errorf(ctx, "qdrant repository: failed to generate embedding: %v", err)
		return fmt.Errorf("failed to generate embedding: %w", err)
	}
	vector := vectors[0]

	// Qdrant requires point IDs to be UUID or uint64, NOT arbitrary strings.
	qdrantID := entryPointID(entry.ContentType, entry.ID)

	point := pkgQdrant.Point{
		ID:     qdrantID,
		Vector: vector,
		Payload: map[string]interface{}{
			"entry_id":     entry.ID, // Row ID from the history store, recovered on search
			"content_type": string(entry.ContentType),
			"session_id":   entry.SessionID,
			"prompt":       entry.Prompt,
			"content":      entry.Content,
			"created_at":   entry.CreatedAt.Format(time.RFC3339),
		},
	}

	req := pkgQdrant.UpsertPointsRequest{
		Points: []pkgQdrant.Point{point},
	}

	if err := r.client.UpsertPoints(ctx, r.collectionName, req); err != nil {
		r.l.Errorf(ctx, "qdrant repository: failed to upsert point: %v", err)
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	r.l.Infof(ctx, "qdrant repository: embedded %s entry %d (qdrant_id=%s)", entry.ContentType, entry.ID, qdrantID)
	return nil
}

// SearchEntries performs semantic search over embedded history entries.
func (r *implRepository) SearchEntries(ctx context.Context, opt repository.VectorSearchOptions) ([]repository.VectorResult, error) {
	queryVector, err := r.embedder.EmbedQuery(ctx, opt.Query)
	if err != nil {
		r.l.Errorf(ctx, "qdrant repository: failed to generate query embedding: %v", err)
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	searchReq := pkgQdrant.SearchRequest{
		Vector:      queryVector,
		Limit:       opt.Limit,
		WithPayload: true, // Need payload to recover the original entry_id
	}

	if opt.ContentType != "" {
		searchReq.Filter = map[string]interface{}{
			"must": []map[string]interface{}{
				{
					"key":   "content_type",
					"match": map[string]interface{}{"value": string(opt.ContentType)},
				},
			},
		}
	}

	resp, err := r.client.SearchPoints(ctx, r.collectionName, searchReq)
	if err != nil {
		r.l.Errorf(ctx, "qdrant repository: failed to search: %v", err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	// Extract entry_id from payload (NOT from the Qdrant point ID).
	results := make([]repository.VectorResult, 0, len(resp.Result))
	for _, scored := range resp.Result {
		entryIDRaw, exists := scored.Payload["entry_id"]
		if !exists {
			r.l.Errorf(ctx, "qdrant repository: entry_id missing in payload for point %v, payload: %+v",
				scored.ID, scored.Payload)
			continue
		}

		// JSON numbers decode as float64
		entryID, ok := entryIDRaw.(float64)
		if !ok {
			r.l.Errorf(ctx, "qdrant repository: entry_id type assertion failed for point %v, got type %T, value: %v",
				scored.ID, entryIDRaw, entryIDRaw)
			continue
		}

		results = append(results, repository.VectorResult{
			EntryID: int64(entryID),
			Score:   scored.Score,
			Payload: scored.Payload,
		})
	}

	r.l.Infof(ctx, "qdrant repository: found %d results for query %q", len(results), opt.Query)
	return results, nil
}

// DeleteEntry removes a history entry's point from Qdrant.
func (r *implRepository) DeleteEntry(ctx context.Context, contentType model.ContentType, id int64) error {
	qdrantID := entryPointID(contentType, id)

	if err := r.client.DeletePoints(ctx, r.collectionName, []string{qdrantID}); err != nil {
		r.l.Errorf(ctx, "qdrant repository: failed to delete point: %v", err)
		return fmt.Errorf("failed to delete point: %w", err)
	}

	r.l.Infof(ctx, "qdrant repository: deleted %s entry %d (qdrant_id=%s)", contentType, id, qdrantID)
	return nil
}

// entryPointID derives a deterministic UUID for a history entry.
// The name combines content type and row ID so the point stays addressable
// from the same (type, id) pair the history store uses. Same entry -> same UUID.
func entryPointID(contentType model.ContentType, id int64) string {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8") // DNS namespace
	name := fmt.Sprintf("%s:%d", contentType, id)
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

// buildEmbeddingText constructs the text to embed for a history entry:
// the originating prompt, the content type, and the first few sentences
// of the piece.
func buildEmbeddingText(entry model.HistoryEntry) string {
	var parts []string

	if prompt := strings.TrimSpace(entry.Prompt); prompt != "" {
		parts = append(parts, prompt)
	}
	parts = append(parts, string(entry.ContentType))

	content := stripMarkdownCodeBlocks(entry.Content)

	// First few non-heading lines as the lead summary
	var leadLines []string
	sentenceCount := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		leadLines = append(leadLines, line)
		sentenceCount += strings.Count(line, ".") + strings.Count(line, "!") + strings.Count(line, "?")
		if sentenceCount >= 3 {
			break
		}
	}
	if len(leadLines) > 0 {
		parts = append(parts, strings.Join(leadLines, " "))
	}

	result := strings.Join(parts, "\n")

	// Limit to 1000 chars to avoid embedding API limits
	if len(result) > 1000 {
		result = result[:1000]
	}

	return result
}

// stripMarkdownCodeBlocks removes fenced code blocks so they do not
// pollute the embedding.
func stripMarkdownCodeBlocks(text string) string {
	re := regexp.MustCompile("(?s)```[a-z]*\\n.*?\\n```")
	return re.ReplaceAllString(text, "")
}
