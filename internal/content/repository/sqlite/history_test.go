package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"realty-content-engine/internal/content/repository"
	"realty-content-engine/internal/model"
)

// mockLogger
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

func newTestRepo(t *testing.T) repository.HistoryRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	repo, err := New(path, 0, &mockLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func entryAt(contentType model.ContentType, content string, at time.Time) model.HistoryEntry {
	return model.HistoryEntry{
		SessionID:   "s1",
		ContentType: contentType,
		Content:     content,
		CreatedAt:   at,
	}
}

func TestHistoryAppendAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Append(ctx, model.HistoryEntry{
		SessionID:   "sess-9",
		ContentType: model.ContentTypeBlog,
		Content:     "# Spring Listings\nA market overview.",
		Prompt:      "Write a blog post about spring listings",
		Metadata:    map[string]interface{}{"words": float64(420)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero id")
	}

	entries, err := repo.List(ctx, repository.ListOptions{ContentType: model.ContentTypeBlog})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	got := entries[0]
	if got.ID != id {
		t.Errorf("expected id %d, got %d", id, got.ID)
	}
	if got.SessionID != "sess-9" {
		t.Errorf("unexpected session id: %q", got.SessionID)
	}
	if got.Prompt != "Write a blog post about spring listings" {
		t.Errorf("unexpected prompt: %q", got.Prompt)
	}
	if got.Metadata["words"] != float64(420) {
		t.Errorf("metadata should survive the round trip, got %v", got.Metadata)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
}

func TestHistoryAppendValidation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Append(ctx, model.HistoryEntry{Content: "text"}); !errors.Is(err, repository.ErrEmptyType) {
		t.Errorf("expected ErrEmptyType, got %v", err)
	}
	if _, err := repo.Append(ctx, model.HistoryEntry{ContentType: model.ContentTypeBlog, Content: "   "}); !errors.Is(err, repository.ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}

func TestHistoryRetention(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 7; i++ {
		e := entryAt(model.ContentTypeBlog, "blog "+string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		if _, err := repo.Append(ctx, e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := repo.Append(ctx, entryAt(model.ContentTypeLinkedIn, "a post", base)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, err := repo.Count(ctx, model.ContentTypeBlog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 blog entries after eviction, got %d", count)
	}

	entries, err := repo.List(ctx, repository.ListOptions{ContentType: model.ContentTypeBlog, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	if entries[0].Content != "blog g" {
		t.Errorf("expected the newest entry first, got %q", entries[0].Content)
	}
	if entries[4].Content != "blog c" {
		t.Errorf("expected the two oldest evicted, got %q oldest", entries[4].Content)
	}

	// Other types are untouched by blog eviction.
	if count, _ := repo.Count(ctx, model.ContentTypeLinkedIn); count != 1 {
		t.Errorf("expected 1 linkedin entry, got %d", count)
	}
}

func TestHistorySurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	repo, err := New(path, 0, &mockLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	if _, err := repo.Append(ctx, entryAt(model.ContentTypeStrategy, "q3 plan", time.Now())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened, err := New(path, 0, &mockLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.List(ctx, repository.ListOptions{ContentType: model.ContentTypeStrategy})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Content != "q3 plan" {
		t.Errorf("entries should survive a reopen, got %v", entries)
	}
}

func TestHistoryListFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	_, _ = repo.Append(ctx, model.HistoryEntry{SessionID: "a", ContentType: model.ContentTypeBlog, Content: "one", CreatedAt: base})
	_, _ = repo.Append(ctx, model.HistoryEntry{SessionID: "b", ContentType: model.ContentTypeBlog, Content: "two", CreatedAt: base.Add(time.Minute)})
	_, _ = repo.Append(ctx, model.HistoryEntry{SessionID: "a", ContentType: model.ContentTypeImage, Content: "three", CreatedAt: base.Add(2 * time.Minute)})

	t.Run("By Type", func(t *testing.T) {
		entries, err := repo.List(ctx, repository.ListOptions{ContentType: model.ContentTypeBlog})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Content != "two" {
			t.Errorf("expected newest first, got %q", entries[0].Content)
		}
	})

	t.Run("By Session", func(t *testing.T) {
		entries, err := repo.List(ctx, repository.ListOptions{SessionID: "a", Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
	})

	t.Run("Across All Types", func(t *testing.T) {
		entries, err := repo.List(ctx, repository.ListOptions{Limit: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
	})

	t.Run("Limit Applies", func(t *testing.T) {
		entries, err := repo.List(ctx, repository.ListOptions{Limit: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 || entries[0].Content != "three" {
			t.Errorf("expected only the newest entry, got %v", entries)
		}
	})
}

func TestHistoryGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Append(ctx, entryAt(model.ContentTypeLinkedIn, "a post", time.Now()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Content != "a post" {
		t.Errorf("unexpected content: %q", entry.Content)
	}

	if _, err := repo.GetByID(ctx, id+100); !errors.Is(err, repository.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestHistorySearch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	_, _ = repo.Append(ctx, entryAt(model.ContentTypeBlog, "open house checklist", base))
	_, _ = repo.Append(ctx, entryAt(model.ContentTypeLinkedIn, "open house highlights", base.Add(time.Minute)))
	_, _ = repo.Append(ctx, entryAt(model.ContentTypeBlog, "pricing strategy", base.Add(2*time.Minute)))

	t.Run("Matches Substring", func(t *testing.T) {
		entries, err := repo.Search(ctx, repository.SearchOptions{Term: "open house"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(entries))
		}
		if entries[0].Content != "open house highlights" {
			t.Errorf("expected newest match first, got %q", entries[0].Content)
		}
	})

	t.Run("Type Filter Applies", func(t *testing.T) {
		entries, err := repo.Search(ctx, repository.SearchOptions{Term: "open house", ContentType: model.ContentTypeBlog})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 || entries[0].Content != "open house checklist" {
			t.Errorf("unexpected matches: %v", entries)
		}
	})

	t.Run("No Matches", func(t *testing.T) {
		entries, err := repo.Search(ctx, repository.SearchOptions{Term: "zoning"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no matches, got %v", entries)
		}
	})
}

func TestHistoryTypesAndCounts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	_, _ = repo.Append(ctx, entryAt(model.ContentTypeLinkedIn, "one", now))
	_, _ = repo.Append(ctx, entryAt(model.ContentTypeBlog, "two", now))
	_, _ = repo.Append(ctx, entryAt(model.ContentTypeBlog, "three", now))

	types, err := repo.Types(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(types) != 2 || types[0] != model.ContentTypeBlog || types[1] != model.ContentTypeLinkedIn {
		t.Errorf("expected [blog linkedin], got %v", types)
	}

	if count, _ := repo.Count(ctx, ""); count != 3 {
		t.Errorf("expected total 3, got %d", count)
	}
	if count, _ := repo.Count(ctx, model.ContentTypeBlog); count != 2 {
		t.Errorf("expected 2 blog entries, got %d", count)
	}
}

func TestHistoryDeleteAndClear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now()

	id, _ := repo.Append(ctx, entryAt(model.ContentTypeBlog, "one", now))
	_, _ = repo.Append(ctx, entryAt(model.ContentTypeBlog, "two", now))
	_, _ = repo.Append(ctx, entryAt(model.ContentTypeImage, "three", now))

	t.Run("Delete Checks Type", func(t *testing.T) {
		if err := repo.Delete(ctx, model.ContentTypeImage, id); !errors.Is(err, repository.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound for the wrong type, got %v", err)
		}
		if err := repo.Delete(ctx, model.ContentTypeBlog, id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.GetByID(ctx, id); !errors.Is(err, repository.ErrEntryNotFound) {
			t.Error("deleted entry should be gone")
		}
	})

	t.Run("Clear By Type", func(t *testing.T) {
		removed, err := repo.Clear(ctx, model.ContentTypeBlog)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed != 1 {
			t.Errorf("expected 1 removed, got %d", removed)
		}
		if count, _ := repo.Count(ctx, model.ContentTypeImage); count != 1 {
			t.Error("other types should be untouched")
		}
	})

	t.Run("Clear All", func(t *testing.T) {
		removed, err := repo.ClearAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed != 1 {
			t.Errorf("expected 1 removed, got %d", removed)
		}
		if count, _ := repo.Count(ctx, ""); count != 0 {
			t.Errorf("expected empty store, got %d", count)
		}
	})
}

func TestHistoryStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("Empty Store", func(t *testing.T) {
		stats, err := repo.Stats(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.TotalItems != 0 {
			t.Errorf("expected 0 items, got %d", stats.TotalItems)
		}
		if stats.LatestEntry != nil {
			t.Error("latest entry should be unset for an empty store")
		}
		if stats.MaxItemsPerType != DefaultRetention {
			t.Errorf("expected retention %d, got %d", DefaultRetention, stats.MaxItemsPerType)
		}
	})

	t.Run("Populated Store", func(t *testing.T) {
		latest := time.Now().Truncate(time.Millisecond)
		_, _ = repo.Append(ctx, entryAt(model.ContentTypeBlog, "one", latest.Add(-time.Minute)))
		_, _ = repo.Append(ctx, entryAt(model.ContentTypeBlog, "two", latest))
		_, _ = repo.Append(ctx, entryAt(model.ContentTypeImage, "three", latest.Add(-time.Hour)))

		stats, err := repo.Stats(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.TotalItems != 3 {
			t.Errorf("expected 3 items, got %d", stats.TotalItems)
		}
		if stats.ItemsByType[model.ContentTypeBlog] != 2 {
			t.Errorf("expected 2 blog items, got %d", stats.ItemsByType[model.ContentTypeBlog])
		}
		if stats.LatestEntry == nil || !stats.LatestEntry.Equal(latest) {
			t.Errorf("expected latest %v, got %v", latest, stats.LatestEntry)
		}
		if stats.DatabaseSizeBytes == 0 {
			t.Error("expected a non-zero database size")
		}
	})
}
