package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"realty-content-engine/internal/content"
	"realty-content-engine/internal/model"
	"realty-content-engine/pkg/datemath"
	"realty-content-engine/pkg/gcalendar"
)

type rewriteTransport struct {
	transport http.RoundTripper
	host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.host
	return t.transport.RoundTrip(req)
}

func calendarForTest(t *testing.T, handler http.HandlerFunc) *gcalendar.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	httpClient := &http.Client{Transport: &rewriteTransport{
		transport: http.DefaultTransport,
		host:      strings.TrimPrefix(srv.URL, "http://"),
	}}

	client, err := gcalendar.NewClientFromHTTP(context.Background(), httpClient)
	if err != nil {
		t.Fatalf("calendar client: %v", err)
	}
	return client
}

func TestSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("unavailable without calendar", func(t *testing.T) {
		e := newTestEnv()
		defer e.sessions.Stop()

		_, err := e.uc.Schedule(ctx, content.ScheduleInput{EntryID: 1, Slot: "tomorrow"})
		if !errors.Is(err, content.ErrSchedulerUnavailable) {
			t.Errorf("expected ErrSchedulerUnavailable, got %v", err)
		}
	})

	t.Run("creates event for a natural slot", func(t *testing.T) {
		e := newTestEnv()
		defer e.sessions.Stop()
		blogID, _ := seedHistory(t, e)

		var captured map[string]interface{}
		e.uc.calendar = calendarForTest(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&captured)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":       "evt-1",
				"htmlLink": "https://calendar.example/evt-1",
				"summary":  captured["summary"],
			})
		})
		parser, err := datemath.NewParser("UTC")
		if err != nil {
			t.Fatal(err)
		}
		e.uc.dateMath = parser
		e.uc.calendarID = "primary"

		out, err := e.uc.Schedule(ctx, content.ScheduleInput{EntryID: blogID, Slot: "tomorrow"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.EventID != "evt-1" {
			t.Errorf("unexpected event id: %s", out.EventID)
		}
		if out.Title != "Downtown Market" {
			t.Errorf("expected title from content heading, got %q", out.Title)
		}
		if out.ContentType != model.ContentTypeBlog {
			t.Errorf("unexpected content type: %s", out.ContentType)
		}
		if out.ScheduledAt.IsZero() {
			t.Error("expected resolved slot time")
		}
		if summary, _ := captured["summary"].(string); summary != "Publish: Downtown Market" {
			t.Errorf("unexpected event summary: %q", summary)
		}
	})

	t.Run("empty slot rejected", func(t *testing.T) {
		e := newTestEnv()
		defer e.sessions.Stop()
		e.uc.calendar = calendarForTest(t, func(w http.ResponseWriter, r *http.Request) {})
		parser, _ := datemath.NewParser("UTC")
		e.uc.dateMath = parser

		_, err := e.uc.Schedule(ctx, content.ScheduleInput{EntryID: 1, Slot: " "})
		if !errors.Is(err, content.ErrEmptySlot) {
			t.Errorf("expected ErrEmptySlot, got %v", err)
		}
	})

	t.Run("missing entry surfaces not found", func(t *testing.T) {
		e := newTestEnv()
		defer e.sessions.Stop()
		e.uc.calendar = calendarForTest(t, func(w http.ResponseWriter, r *http.Request) {})
		parser, _ := datemath.NewParser("UTC")
		e.uc.dateMath = parser

		if _, err := e.uc.Schedule(ctx, content.ScheduleInput{EntryID: 404, Slot: "tomorrow"}); err == nil {
			t.Error("expected error for missing entry")
		}
	})
}
