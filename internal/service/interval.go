package service

import (
	"fmt"
	"time"

	"github.com/solidus85/evvie-time-tracker/internal/model"
)

// timesOverlap reports whether two half-open intervals [s1,e1) and [s2,e2)
// share any minute. Arguments are minutes since midnight. Shifts that merely
// touch at an endpoint do not overlap.
func timesOverlap(s1, e1, s2, e2 int) bool {
	return !(e1 <= s2 || s1 >= e2)
}

// parseClock parses a wall-clock time of day into minutes since midnight.
// Accepts HH:MM and HH:MM:SS so that values read back from a TIME column
// parse the same as API input.
func parseClock(s string) (int, error) {
	t, err := time.Parse(model.ClockFormat, s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(model.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// clock12 renders minutes since midnight the way conflict messages show them.
func clock12(m int) string {
	h, mm := m/60, m%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, mm, suffix)
}

func hoursBetween(startMin, endMin int) float64 {
	return float64(endMin-startMin) / 60.0
}

// dateOnly strips the time-of-day component.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
