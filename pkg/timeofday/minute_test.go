package timeofday

import (
	"testing"
	"time"
)

func TestFromTimeTruncatesSeconds(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want Minute
	}{
		{"midnight", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 0},
		{"seconds never round up", time.Date(2024, 3, 1, 8, 14, 59, 999_000_000, time.UTC), 8*60 + 14},
		{"end of day", time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC), MaxMinute},
		{"non-UTC instant converted first", time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600)), 8*60 + 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTime(tt.in); got != tt.want {
				t.Errorf("FromTime(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromTimeDiscardsDate(t *testing.T) {
	a := time.Date(2020, 1, 1, 14, 5, 0, 0, time.UTC)
	b := time.Date(2024, 7, 19, 14, 5, 30, 0, time.UTC)
	if FromTime(a) != FromTime(b) {
		t.Errorf("different days at the same time of day should map to the same minute: %d vs %d",
			FromTime(a), FromTime(b))
	}
}

func TestStringFormatting(t *testing.T) {
	tests := []struct {
		m    Minute
		want string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{8 * 60, "08:00"},
		{12 * 60, "12:00"},
		{MaxMinute, "23:59"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Minute(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for m := Minute(0); m < MinutesPerDay; m++ {
		got, err := Parse(m.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", m.String(), err)
		}
		if got != m {
			t.Fatalf("Parse(%q) = %d, want %d", m.String(), got, m)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "24:00", "12:60", "noon", "-1:30"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) should fail", s)
		}
	}
}

func TestValid(t *testing.T) {
	if Minute(-1).Valid() || Minute(MinutesPerDay).Valid() {
		t.Error("out-of-range minutes reported valid")
	}
	if !Minute(0).Valid() || !Minute(MaxMinute).Valid() {
		t.Error("in-range minutes reported invalid")
	}
}
