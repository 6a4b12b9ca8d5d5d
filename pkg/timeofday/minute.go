// Package timeofday encodes instants as minutes after midnight, discarding
// the date component entirely.
package timeofday

import (
	"fmt"
	"time"
)

const (
	// MinutesPerDay is the number of distinct minute-of-day values.
	MinutesPerDay = 24 * 60

	// MaxMinute is the largest representable Minute (23:59).
	MaxMinute = MinutesPerDay - 1
)

// Minute is a time of day in minutes after midnight, in [0, 1440).
// Two instants on different days map to the same Minute; that loss is the
// point of the encoding.
type Minute int

// FromTime converts an instant to its UTC minute of day. Seconds and
// sub-second precision are truncated, never rounded up into the next minute.
func FromTime(t time.Time) Minute {
	u := t.UTC()
	return Minute(u.Hour()*60 + u.Minute())
}

// Valid reports whether m lies in [0, MinutesPerDay).
func (m Minute) Valid() bool {
	return m >= 0 && m < MinutesPerDay
}

// String formats m as zero-padded 24-hour "HH:MM".
func (m Minute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Parse is the inverse of String: it reads a zero-padded "HH:MM" string and
// returns the corresponding Minute.
func Parse(s string) (Minute, error) {
	var h, mm int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &mm); err != nil {
		return 0, fmt.Errorf("parsing time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return Minute(h*60 + mm), nil
}
