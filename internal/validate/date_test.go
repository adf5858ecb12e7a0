package validate

import (
	"testing"
	"time"
)

func TestCleanDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"iso date", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"slash date", "2024/03/15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"year month only", "2024-03", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"compact month", "202403", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"compact day", "20240315", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"day-first dashes", "15-03-2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"day-first dots", "15.03.2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"english long form", "March 15, 2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"timestamp", "2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "not a date", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("CleanDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("CleanDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanDateDayFirstPrecedence(t *testing.T) {
	// 05/03/2024 is ambiguous; the day-first layout is tried before
	// month-first, so this must parse as March 5th
	got, ok := CleanDate("05/03/2024")
	if !ok {
		t.Fatal("expected 05/03/2024 to parse")
	}
	if got.Month() != time.March || got.Day() != 5 {
		t.Errorf("expected March 5, got %v", got)
	}
}
