package services

import (
	"testing"
	"time"
)

func mustParseDay(t *testing.T, key string) time.Time {
	t.Helper()
	day, err := ParseDate(key, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", key, err)
	}
	return day
}

func TestDateKeyRoundTrip(t *testing.T) {
	t.Parallel()

	keys := []string{"2024-01-01", "2024-02-29", "2026-12-31"}
	for _, key := range keys {
		day, err := ParseDate(key, time.UTC)
		if err != nil {
			t.Fatalf("ParseDate(%q) failed: %v", key, err)
		}
		if got := FormatDate(day); got != key {
			t.Fatalf("round trip of %q produced %q", key, got)
		}
		if day.Hour() != 12 {
			t.Fatalf("expected midday anchor for %q, got hour %d", key, day.Hour())
		}
	}

	if _, err := ParseDate("not-a-date", time.UTC); err == nil {
		t.Fatal("expected error for malformed date key")
	}
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		start  string
		months int
		want   string
	}{
		{name: "leap february", start: "2024-01-31", months: 1, want: "2024-02-29"},
		{name: "regular february", start: "2023-01-31", months: 1, want: "2023-02-28"},
		{name: "no clamp needed", start: "2024-03-15", months: 2, want: "2024-05-15"},
		{name: "year rollover", start: "2024-10-31", months: 4, want: "2025-02-28"},
		{name: "nine months", start: "2024-01-01", months: 9, want: "2024-10-01"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := AddMonths(mustParseDay(t, testCase.start), testCase.months)
			if FormatDate(got) != testCase.want {
				t.Fatalf("AddMonths(%s, %d) = %s, want %s", testCase.start, testCase.months, FormatDate(got), testCase.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{name: "same day", from: "2024-05-10", to: "2024-05-10", want: 0},
		{name: "forward", from: "2024-01-01", to: "2024-01-29", want: 28},
		{name: "backward", from: "2024-01-29", to: "2024-01-01", want: -28},
		{name: "across leap day", from: "2024-02-28", to: "2024-03-01", want: 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := DaysBetween(mustParseDay(t, testCase.from), mustParseDay(t, testCase.to))
			if got != testCase.want {
				t.Fatalf("DaysBetween(%s, %s) = %d, want %d", testCase.from, testCase.to, got, testCase.want)
			}
		})
	}
}

func TestDaysBetweenAcrossDSTTransition(t *testing.T) {
	t.Parallel()

	location, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// The clocks jump forward on 2024-03-31 in Berlin.
	from, err := ParseDate("2024-03-30", location)
	if err != nil {
		t.Fatalf("parse from: %v", err)
	}
	to, err := ParseDate("2024-04-01", location)
	if err != nil {
		t.Fatalf("parse to: %v", err)
	}
	if got := DaysBetween(from, to); got != 2 {
		t.Fatalf("DaysBetween across DST = %d, want 2", got)
	}
}
