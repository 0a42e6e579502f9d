package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-01-15")
	if err != nil {
		t.Fatalf("Failed to parse date: %v", err)
	}
	expected := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	if !date.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, date)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	h, m, s, err := ParseTimeOfDay("9:05")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if h != 9 || m != 5 || s != 0 {
		t.Errorf("Expected 9:05:00, got %d:%d:%d", h, m, s)
	}

	h, m, s, err = ParseTimeOfDay("23:59:58")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if h != 23 || m != 59 || s != 58 {
		t.Errorf("Expected 23:59:58, got %d:%d:%d", h, m, s)
	}

	for _, bad := range []string{"24:00", "12:60", "noon", "12:5"} {
		if _, _, _, err := ParseTimeOfDay(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestParseWhen(t *testing.T) {
	fallback := time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local)

	// Test empty string returns fallback
	result, err := ParseWhen("", fallback)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Equal(fallback) {
		t.Errorf("Expected fallback time, got %v", result)
	}

	// Test display format
	result, err = ParseWhen("2024-01-15 14:30:00", fallback)
	if err != nil {
		t.Fatalf("Failed to parse datetime: %v", err)
	}
	expected := time.Date(2024, 1, 15, 14, 30, 0, 0, time.Local)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}

	// Test HH:MM format (on the fallback day)
	result, err = ParseWhen("14:30", fallback)
	if err != nil {
		t.Fatalf("Failed to parse HH:MM: %v", err)
	}
	if result.Hour() != 14 || result.Minute() != 30 || result.Day() != 15 {
		t.Errorf("Expected 15th 14:30, got %v", result)
	}

	if _, err := ParseWhen("yesterday-ish", fallback); err == nil {
		t.Error("Expected error for unparseable input")
	}
}

func TestParseRelativeExpression(t *testing.T) {
	tests := []struct {
		expr  string
		value int
		unit  TimeUnit
	}{
		{"15m", 15, Minute},
		{"6M", 6, Month},
		{" 2y ", 2, Year},
		{"30seconds", 30, Second},
		{"1week", 1, Week},
	}
	for _, tt := range tests {
		value, unit, err := ParseRelativeExpression(tt.expr)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.expr, err)
			continue
		}
		if value != tt.value || unit != tt.unit {
			t.Errorf("%q: expected %d%s, got %d%s", tt.expr, tt.value, tt.unit, value, unit)
		}
		if got := FormatRelativeExpression(value, unit); tt.expr == "15m" && got != "15m" {
			t.Errorf("Expected 15m, got %s", got)
		}
	}

	for _, bad := range []string{"", "m", "0h", "5x"} {
		if _, _, err := ParseRelativeExpression(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestParseLeadingInt(t *testing.T) {
	cases := map[string]struct {
		n  int
		ok bool
	}{
		"15":    {15, true},
		" 7 ":   {7, true},
		"12abc": {12, true},
		"-3":    {-3, true},
		"abc":   {0, false},
		"":      {0, false},
		"1.5":   {1, true},
	}
	for in, want := range cases {
		n, ok := ParseLeadingInt(in)
		if n != want.n || ok != want.ok {
			t.Errorf("ParseLeadingInt(%q) = %d, %v; want %d, %v", in, n, ok, want.n, want.ok)
		}
	}
}

func TestBuildRelativeLabel(t *testing.T) {
	if got := BuildRelativeLabel(15, Minute); got != "Last 15 minutes" {
		t.Errorf("Expected 'Last 15 minutes', got %q", got)
	}
	if got := BuildRelativeLabel(3, Month); got != "Last 3 months" {
		t.Errorf("Expected 'Last 3 months', got %q", got)
	}
	if got := BuildRelativeLabel(4, TimeUnit("q")); got != "Last 4 q" {
		t.Errorf("Expected raw unit fallback, got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(90 * time.Minute); got != "1h30m" {
		t.Errorf("Expected 1h30m, got %s", got)
	}
	if got := FormatDuration(-5 * time.Minute); got != "-0h05m" {
		t.Errorf("Expected -0h05m, got %s", got)
	}
}
