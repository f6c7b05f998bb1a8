package datemath_test

import (
	"testing"
	"time"

	"realty-content-engine/pkg/datemath"
)

func TestNewParser(t *testing.T) {
	_, err := datemath.NewParser("America/New_York")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = datemath.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestParse(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC) // Wednesday, May 1, 2024
	startOfBase := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		relative string
		want     time.Time
		wantErr  bool
	}{
		{
			name:     "Today",
			relative: "today",
			want:     startOfBase,
		},
		{
			name:     "Tomorrow",
			relative: "tomorrow",
			want:     startOfBase.AddDate(0, 0, 1),
		},
		{
			name:     "Yesterday",
			relative: "yesterday",
			want:     startOfBase.AddDate(0, 0, -1),
		},
		{
			name:     "In 3 days",
			relative: "in 3 days",
			want:     startOfBase.AddDate(0, 0, 3),
		},
		{
			name:     "In 2 weeks",
			relative: "in 2 weeks",
			want:     startOfBase.AddDate(0, 0, 14),
		},
		{
			name:     "In 1 month",
			relative: "in 1 month",
			want:     startOfBase.AddDate(0, 1, 0),
		},
		{
			name:     "Invalid duration pattern",
			relative: "in a few days",
			want:     baseTime,
			wantErr:  true,
		},
		{
			name:     "Next Monday (from Wed)",
			relative: "next monday",
			want:     startOfBase.AddDate(0, 0, 5), // Wed(3) to Mon(1) is +5 days
		},
		{
			name:     "Next Wednesday (from Wed)",
			relative: "next wednesday",
			want:     startOfBase.AddDate(0, 0, 7), // 1 week later
		},
		{
			name:     "Unknown fallback",
			relative: "some random day",
			want:     startOfBase, // falls back to startOfDay(base)
		},
		{
			name:     "Invalid Next Weekday",
			relative: "next funday",
			want:     baseTime, // Error returns baseTime
			wantErr:  true,
		},
		{
			name:     "Tomorrow morning",
			relative: "tomorrow morning",
			want:     startOfBase.AddDate(0, 0, 1).Add(9 * time.Hour),
		},
		{
			name:     "Next friday evening",
			relative: "next friday evening",
			want:     startOfBase.AddDate(0, 0, 2).Add(18 * time.Hour),
		},
		{
			name:     "Clock time with am",
			relative: "tomorrow at 9am",
			want:     startOfBase.AddDate(0, 0, 1).Add(9 * time.Hour),
		},
		{
			name:     "Clock time with minutes and pm",
			relative: "in 3 days at 2:30pm",
			want:     startOfBase.AddDate(0, 0, 3).Add(14*time.Hour + 30*time.Minute),
		},
		{
			name:     "24h clock",
			relative: "today at 17:00",
			want:     startOfBase.Add(17 * time.Hour),
		},
		{
			name:     "Invalid clock time",
			relative: "tomorrow at 25:00",
			want:     baseTime,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.relative, baseTime)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseSlot(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	baseTime := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	t.Run("day-only phrase is all-day", func(t *testing.T) {
		res, err := parser.ParseSlot("tomorrow", baseTime)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsAllDay {
			t.Error("expected all-day slot for day-only phrase")
		}
	})

	t.Run("clocked phrase is not all-day", func(t *testing.T) {
		res, err := parser.ParseSlot("tomorrow at 10am", baseTime)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.IsAllDay {
			t.Error("expected fixed-hour slot for clocked phrase")
		}
		if res.AbsoluteTime.Hour() != 10 {
			t.Errorf("expected 10:00, got %v", res.AbsoluteTime)
		}
	})

	t.Run("daypart phrase is not all-day", func(t *testing.T) {
		res, err := parser.ParseSlot("next monday morning", baseTime)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.IsAllDay {
			t.Error("expected fixed-hour slot for daypart phrase")
		}
	})
}

func TestEndOfDay(t *testing.T) {
	parser, _ := datemath.NewParser("UTC")
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 5, 1, 23, 59, 59, 0, time.UTC)

	got := parser.EndOfDay(base)
	if !got.Equal(want) {
		t.Errorf("EndOfDay() got = %v, want %v", got, want)
	}
}
