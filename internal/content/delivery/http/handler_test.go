package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"realty-content-engine/internal/content"
	contentHTTP "realty-content-engine/internal/content/delivery/http"
	"realty-content-engine/internal/content/repository"
	"realty-content-engine/internal/guardrails"
	"realty-content-engine/internal/middleware"
	"realty-content-engine/internal/model"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

// mockContentUseCase implements content.UseCase with canned outputs so
// each subtest can exercise one route's translation layer.
type mockContentUseCase struct {
	runOutput    content.RunOutput
	lastRunInput content.RunInput

	instagramOutput content.InstagramPostOutput

	scheduleOutput content.ScheduleOutput
	scheduleErr    error

	historyEntry model.HistoryEntry
	historyErr   error

	status          guardrails.Status
	setGuardrailErr error
	lastGuard       model.GuardName
	lastEnabled     bool
}

func (m *mockContentUseCase) Run(ctx context.Context, input content.RunInput) content.RunOutput {
	m.lastRunInput = input
	return m.runOutput
}

func (m *mockContentUseCase) RunWithResearch(ctx context.Context, input content.ResearchInput) content.ResearchOutput {
	return content.ResearchOutput{}
}

func (m *mockContentUseCase) GenerateInstagramPost(ctx context.Context, input content.InstagramPostInput) (content.InstagramPostOutput, error) {
	return m.instagramOutput, nil
}

func (m *mockContentUseCase) Schedule(ctx context.Context, input content.ScheduleInput) (content.ScheduleOutput, error) {
	if m.scheduleErr != nil {
		return content.ScheduleOutput{}, m.scheduleErr
	}
	return m.scheduleOutput, nil
}

func (m *mockContentUseCase) ListHistory(ctx context.Context, input content.HistoryListInput) ([]model.HistoryEntry, error) {
	return nil, nil
}

func (m *mockContentUseCase) GetHistoryEntry(ctx context.Context, id int64) (model.HistoryEntry, error) {
	if m.historyErr != nil {
		return model.HistoryEntry{}, m.historyErr
	}
	return m.historyEntry, nil
}

func (m *mockContentUseCase) SearchHistory(ctx context.Context, input content.SearchInput) (content.SearchOutput, error) {
	return content.SearchOutput{}, nil
}

func (m *mockContentUseCase) HistoryStats(ctx context.Context) (model.HistoryStats, error) {
	return model.HistoryStats{}, nil
}

func (m *mockContentUseCase) DeleteHistoryEntry(ctx context.Context, contentType model.ContentType, id int64) error {
	return m.historyErr
}

func (m *mockContentUseCase) ClearHistory(ctx context.Context, contentType model.ContentType) (int64, error) {
	return 0, nil
}

func (m *mockContentUseCase) ExportHistoryEntry(ctx context.Context, id int64, format string) (content.ExportOutput, error) {
	return content.ExportOutput{}, m.historyErr
}

func (m *mockContentUseCase) GetSession(id string) (model.Session, bool) {
	return model.Session{}, false
}

func (m *mockContentUseCase) ListSessions() []string                  { return nil }
func (m *mockContentUseCase) ClearSession(id string) bool             { return false }
func (m *mockContentUseCase) DeleteSession(id string) bool            { return false }
func (m *mockContentUseCase) ExportSession(id string) ([]byte, error) { return nil, nil }

func (m *mockContentUseCase) ImportSession(data []byte) (model.Session, error) {
	return model.Session{}, nil
}

func (m *mockContentUseCase) GuardrailsStatus() guardrails.Status { return m.status }

func (m *mockContentUseCase) SetGuardrail(guard model.GuardName, enabled bool) error {
	if m.setGuardrailErr != nil {
		return m.setGuardrailErr
	}
	m.lastGuard = guard
	m.lastEnabled = enabled
	return nil
}

func (m *mockContentUseCase) TopicSuggestions() []string { return nil }

// ── Test Helpers ───────────────────────────────────────────────────────────

func newTestEnv(t *testing.T) (*gin.Engine, *mockContentUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	muc := &mockContentUseCase{}
	l := &mockLogger{}

	engine := gin.New()
	api := engine.Group("/api/v1")
	// Generous limits so the rate limiter never interferes here.
	mw := middleware.New(l, middleware.RateLimitConfig{RequestsPerMinute: 6000, Burst: 100})
	contentHTTP.RegisterRoutes(api, contentHTTP.New(l, muc), mw)

	return engine, muc
}

type envelope struct {
	ErrorCode int                    `json:"error_code"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body []byte) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("malformed response body %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	return b
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestContentRoutes(t *testing.T) {
	t.Run("run returns the workflow output", func(t *testing.T) {
		engine, muc := newTestEnv(t)
		muc.runOutput = content.RunOutput{
			Success:     true,
			Content:     "Staging sells homes faster.",
			ContentType: "blog",
			SessionID:   "abc",
		}

		body := mustJSON(t, map[string]interface{}{
			"user_input": "  Write a blog post about home staging  ",
			"session_id": "abc",
		})
		rec, env := doRequest(t, engine, http.MethodPost, "/api/v1/content/run", body)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if env.ErrorCode != 0 {
			t.Errorf("error_code = %d, want 0", env.ErrorCode)
		}
		if got := env.Data["content"]; got != "Staging sells homes faster." {
			t.Errorf("content = %v", got)
		}
		if got := env.Data["session_id"]; got != "abc" {
			t.Errorf("session_id = %v, want abc", got)
		}
		if muc.lastRunInput.UserInput != "Write a blog post about home staging" {
			t.Errorf("input not trimmed: %q", muc.lastRunInput.UserInput)
		}
	})

	t.Run("run rejects a blank input", func(t *testing.T) {
		engine, _ := newTestEnv(t)

		body := mustJSON(t, map[string]interface{}{"user_input": "   "})
		rec, env := doRequest(t, engine, http.MethodPost, "/api/v1/content/run", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if env.Message != content.ErrEmptyInput.Error() {
			t.Errorf("message = %q", env.Message)
		}
	})

	t.Run("run rejects malformed JSON", func(t *testing.T) {
		engine, _ := newTestEnv(t)

		rec, _ := doRequest(t, engine, http.MethodPost, "/api/v1/content/run", []byte("{not json"))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("instagram post returns the assembled parts", func(t *testing.T) {
		engine, muc := newTestEnv(t)
		muc.instagramOutput = content.InstagramPostOutput{
			Success:  true,
			Caption:  "Sunlit kitchen, move-in ready.",
			Hashtags: "#realestate #dreamhome",
			FullPost: "Sunlit kitchen, move-in ready.\n\n#realestate #dreamhome",
		}

		body := mustJSON(t, map[string]interface{}{
			"image_description": "modern kitchen with an island",
		})
		rec, env := doRequest(t, engine, http.MethodPost, "/api/v1/content/instagram-post", body)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := env.Data["full_post"]; got != muc.instagramOutput.FullPost {
			t.Errorf("full_post = %v", got)
		}
	})

	t.Run("schedule formats the booked slot", func(t *testing.T) {
		engine, muc := newTestEnv(t)
		when := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
		muc.scheduleOutput = content.ScheduleOutput{
			EventID:     "evt-1",
			Title:       "Publish: blog",
			ScheduledAt: when,
			ContentType: model.ContentTypeBlog,
		}

		body := mustJSON(t, map[string]interface{}{"entry_id": 7, "slot": "next monday"})
		rec, env := doRequest(t, engine, http.MethodPost, "/api/v1/content/schedule", body)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		want := when.Local().Format("2006-01-02 15:04:05")
		if got := env.Data["scheduled_at"]; got != want {
			t.Errorf("scheduled_at = %v, want %s", got, want)
		}
		if got := env.Data["content_type"]; got != "blog" {
			t.Errorf("content_type = %v", got)
		}
	})

	t.Run("schedule reports a missing calendar as a client error", func(t *testing.T) {
		engine, muc := newTestEnv(t)
		muc.scheduleErr = content.ErrSchedulerUnavailable

		body := mustJSON(t, map[string]interface{}{"entry_id": 7, "slot": "tomorrow"})
		rec, env := doRequest(t, engine, http.MethodPost, "/api/v1/content/schedule", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if _, ok := env.Data["hint"]; !ok {
			t.Errorf("expected a hint in %v", env.Data)
		}
	})
}

func TestHistoryRoutes(t *testing.T) {
	t.Run("detail maps missing entries to 404", func(t *testing.T) {
		engine, muc := newTestEnv(t)
		muc.historyErr = repository.ErrEntryNotFound

		rec, _ := doRequest(t, engine, http.MethodGet, "/api/v1/history/99", nil)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("detail rejects a non-numeric id", func(t *testing.T) {
		engine, _ := newTestEnv(t)

		rec, _ := doRequest(t, engine, http.MethodGet, "/api/v1/history/abc", nil)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("search requires a query", func(t *testing.T) {
		engine, _ := newTestEnv(t)

		rec, env := doRequest(t, engine, http.MethodGet, "/api/v1/history/search", nil)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if env.Message != content.ErrEmptyQuery.Error() {
			t.Errorf("message = %q", env.Message)
		}
	})
}

func TestGuardrailRoutes(t *testing.T) {
	t.Run("toggles a guard and returns the new status", func(t *testing.T) {
		engine, muc := newTestEnv(t)
		muc.status = guardrails.Status{TopicalEnabled: false, SafetyEnabled: true}

		body := mustJSON(t, map[string]interface{}{"enabled": false})
		rec, env := doRequest(t, engine, http.MethodPut, "/api/v1/guardrails/topical", body)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if muc.lastGuard != model.GuardName("topical") || muc.lastEnabled {
			t.Errorf("recorded toggle = (%s, %v)", muc.lastGuard, muc.lastEnabled)
		}
		if got := env.Data["safety_enabled"]; got != true {
			t.Errorf("safety_enabled = %v, want true", got)
		}
	})

	t.Run("unknown guard comes back as 400", func(t *testing.T) {
		engine, muc := newTestEnv(t)
		muc.setGuardrailErr = guardrails.ErrUnknownGuard

		body := mustJSON(t, map[string]interface{}{"enabled": true})
		rec, _ := doRequest(t, engine, http.MethodPut, "/api/v1/guardrails/bogus", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("missing enabled field fails binding", func(t *testing.T) {
		engine, _ := newTestEnv(t)

		body := mustJSON(t, map[string]interface{}{})
		rec, _ := doRequest(t, engine, http.MethodPut, "/api/v1/guardrails/topical", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}
