package qdrant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"realty-content-engine/internal/content/repository"
	"realty-content-engine/internal/content/repository/qdrant"
	"realty-content-engine/internal/model"
	pkgQdrant "realty-content-engine/pkg/qdrant"
	"realty-content-engine/pkg/voyage"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

func TestQdrantRepository(t *testing.T) {
	// Mock Voyage API
	voyageMux := http.NewServeMux()
	voyageMux.HandleFunc("/embeddings", func(w http.ResponseWriter, r *http.Request) {
		var req voyage.EmbedRequest
		json.NewDecoder(r.Body).Decode(&req)

		if len(req.Input) > 0 && strings.Contains(req.Input[0], "error_embed") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		resp := voyage.EmbedResponse{
			Data: []voyage.EmbeddingData{
				{Embedding: []float32{0.1, 0.2, 0.3}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})
	voyageTS := httptest.NewServer(voyageMux)
	defer voyageTS.Close()

	// Mock Qdrant API, capturing point IDs so determinism can be checked
	var lastUpsertID, lastDeleteID string

	qdrantMux := http.NewServeMux()
	qdrantMux.HandleFunc("/collections/test_content/points", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			var req pkgQdrant.UpsertPointsRequest
			json.NewDecoder(r.Body).Decode(&req)
			if len(req.Points) > 0 {
				if id, ok := req.Points[0].ID.(string); ok {
					lastUpsertID = id
				}
				payload := req.Points[0].Payload
				if content, ok := payload["content"].(string); ok && strings.Contains(content, "error_db") {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
			}
			w.WriteHeader(http.StatusOK)
		}
	})
	qdrantMux.HandleFunc("/collections/test_content/points/search", func(w http.ResponseWriter, r *http.Request) {
		var req pkgQdrant.SearchRequest
		json.NewDecoder(r.Body).Decode(&req)

		if req.Limit == 99 { // dummy condition to trigger error
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		if req.Filter != nil {
			// Type-filtered flow
			resp := pkgQdrant.SearchResponse{
				Result: []pkgQdrant.ScoredPoint{
					{
						ID:    "123e4567-e89b-12d3-a456-426614174000",
						Score: 0.95,
						Payload: map[string]interface{}{
							"entry_id":     42,
							"content_type": "blog",
							"content":      "Filtered entry",
						},
					},
				},
			}
			json.NewEncoder(w).Encode(resp)
			return
		}

		// Unfiltered flow: one good point, one with a broken payload
		resp := pkgQdrant.SearchResponse{
			Result: []pkgQdrant.ScoredPoint{
				{
					ID:    "123e4567-e89b-12d3-a456-426614174000",
					Score: 0.88,
					Payload: map[string]interface{}{
						"entry_id":     7,
						"content_type": "instagram",
						"content":      "Regular entry",
					},
				},
				{
					ID:    "223e4567-e89b-12d3-a456-426614174000",
					Score: 0.80,
					Payload: map[string]interface{}{
						"content_type": "blog",
						"content":      "Point without entry_id",
					},
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})
	qdrantMux.HandleFunc("/collections/test_content/points/delete", func(w http.ResponseWriter, r *http.Request) {
		var req pkgQdrant.DeletePointsRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Points) > 0 {
			lastDeleteID = req.Points[0]
		}
		w.WriteHeader(http.StatusOK)
	})

	qdrantTS := httptest.NewServer(qdrantMux)
	defer qdrantTS.Close()

	// Init Clients
	vClient, _ := voyage.New("test-key")
	vClient.WithBaseURL(voyageTS.URL)

	qClient := pkgQdrant.NewClient(qdrantTS.URL)
	repo := qdrant.New(qClient, vClient, "test_content", &mockLogger{})
	ctx := context.Background()

	t.Run("EmbedEntry", func(t *testing.T) {
		entry := model.HistoryEntry{
			ID:          7,
			SessionID:   "s1",
			ContentType: model.ContentTypeBlog,
			Content:     "# Kitchen Trends\n\nBuyers love open kitchens. Islands sell houses.",
			Prompt:      "Write a blog post about kitchen trends",
			CreatedAt:   time.Now(),
		}
		if err := repo.EmbedEntry(ctx, entry); err != nil {
			t.Errorf("unexpected error: %v", err)
		}

		entry.Prompt = "error_embed"
		if err := repo.EmbedEntry(ctx, entry); err == nil {
			t.Errorf("expected voyage error")
		}

		entry.Prompt = "clean"
		entry.Content = "error_db"
		if err := repo.EmbedEntry(ctx, entry); err == nil {
			t.Errorf("expected qdrant error")
		}
	})

	t.Run("SearchEntries", func(t *testing.T) {
		opts := repository.VectorSearchOptions{
			Query: "kitchen ideas",
			Limit: 10,
		}
		results, err := repo.SearchEntries(ctx, opts)
		if err != nil {
			t.Fatalf("unexpected search error: %v", err)
		}
		if len(results) != 1 || results[0].EntryID != 7 {
			t.Errorf("unexpected search result: %+v", results)
		}

		// Type filter routes through the filtered flow
		opts.ContentType = model.ContentTypeBlog
		results, err = repo.SearchEntries(ctx, opts)
		if err != nil {
			t.Fatalf("unexpected filtered search error: %v", err)
		}
		if len(results) != 1 || results[0].EntryID != 42 {
			t.Errorf("unexpected filtered result: %+v", results)
		}

		// Embed error
		opts.ContentType = ""
		opts.Query = "error_embed"
		if _, err := repo.SearchEntries(ctx, opts); err == nil {
			t.Errorf("expected embed search error")
		}

		// DB error
		opts.Query = "clean"
		opts.Limit = 99
		if _, err := repo.SearchEntries(ctx, opts); err == nil {
			t.Errorf("expected db search error")
		}
	})

	t.Run("DeleteEntry", func(t *testing.T) {
		entry := model.HistoryEntry{
			ID:          7,
			ContentType: model.ContentTypeBlog,
			Content:     "# Kitchen Trends",
			Prompt:      "kitchen trends",
			CreatedAt:   time.Now(),
		}
		if err := repo.EmbedEntry(ctx, entry); err != nil {
			t.Fatalf("unexpected embed error: %v", err)
		}
		if err := repo.DeleteEntry(ctx, model.ContentTypeBlog, 7); err != nil {
			t.Errorf("unexpected delete error: %v", err)
		}

		// Same (type, id) must map to the same point
		if lastUpsertID == "" || lastUpsertID != lastDeleteID {
			t.Errorf("point ID not deterministic: upserted %q, deleted %q", lastUpsertID, lastDeleteID)
		}
	})
}
