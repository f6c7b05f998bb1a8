package optimizer

import (
	"context"
	"strings"
	"testing"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

const structuredPost = `# Home Staging Guide

Staging sells homes faster. Buyers decide in minutes. A clean space helps them picture their life there.

## Declutter First

Remove personal items. Pack away photos. Clear the counters.

## Light And Space

Open the curtains. Add warm lamps. Mirrors make rooms feel larger.

## Final Touches

- Fresh flowers
- Neutral scents
- Soft music

Staging is cheap compared to a price cut. Start with one room and build from there.`

func TestAnalyze(t *testing.T) {
	ctx := context.Background()
	a := New(&mockLogger{})

	t.Run("well-structured content scores high", func(t *testing.T) {
		report := a.Analyze(ctx, structuredPost, []string{"staging"})

		if report.SEOScore < 60 {
			t.Errorf("expected a decent score, got %d (%s)", report.SEOScore, report.Grade)
		}
		if !report.Structure.HasTitle {
			t.Error("title not detected")
		}
		if report.Structure.HeadingCount < 3 {
			t.Errorf("headings not detected: %d", report.Structure.HeadingCount)
		}
		if report.Structure.ListItems != 3 {
			t.Errorf("list items not detected: %d", report.Structure.ListItems)
		}
	})

	t.Run("keyword stats track placement", func(t *testing.T) {
		report := a.Analyze(ctx, structuredPost, []string{"staging", "mortgage"})

		if len(report.Keywords) != 2 {
			t.Fatalf("expected 2 keyword stats, got %d", len(report.Keywords))
		}

		staging := report.Keywords[0]
		if staging.Count == 0 || !staging.InTitle {
			t.Errorf("staging usage not detected: %+v", staging)
		}

		mortgage := report.Keywords[1]
		if mortgage.Count != 0 {
			t.Errorf("mortgage should be absent, got %+v", mortgage)
		}

		found := false
		for _, s := range report.Suggestions {
			if strings.Contains(s, "mortgage") {
				found = true
			}
		}
		if !found {
			t.Error("expected a suggestion about the missing keyword")
		}
	})

	t.Run("unstructured wall of text scores low", func(t *testing.T) {
		wall := strings.Repeat("The multifaceted considerations surrounding residential property transactions necessitate comprehensive deliberation. ", 30)

		report := a.Analyze(ctx, wall, nil)
		if report.SEOScore >= 60 {
			t.Errorf("expected a low score, got %d", report.SEOScore)
		}
		if len(report.Suggestions) == 0 {
			t.Error("expected suggestions for unstructured text")
		}
	})

	t.Run("empty content", func(t *testing.T) {
		report := a.Analyze(ctx, "", nil)
		if report.Readability.Words != 0 {
			t.Errorf("expected zero words, got %d", report.Readability.Words)
		}
	})
}

func TestSyllableCount(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"home", 1},
		{"house", 1},
		{"property", 3},
		{"real", 1},
		{"available", 4},
		{"a", 1},
		{"", 1},
	}
	for _, tt := range tests {
		if got := syllableCount(tt.word); got != tt.want {
			t.Errorf("syllableCount(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestReadabilityLevels(t *testing.T) {
	simple := "The house is big. The yard is green. We like it here. It has a pool."
	a := New(&mockLogger{})

	report := a.readability(simple)
	if report.Score < 70 {
		t.Errorf("simple prose should read easy, got %.1f", report.Score)
	}
	if report.Sentences != 4 {
		t.Errorf("expected 4 sentences, got %d", report.Sentences)
	}
}
