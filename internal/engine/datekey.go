package engine

import (
	"fmt"
	"time"
)

// DateKeyLayout is the layout of local calendar date keys.
const DateKeyLayout = "2006-01-02"

// Clock abstracts wall time so tests can advance it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real wall clock.
func SystemClock() Clock { return systemClock{} }

// DateKey returns the calendar date of t in loc as YYYY-MM-DD.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateKeyLayout)
}

// ParseDateKey parses a date key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

// AddDays shifts a date key by n calendar days. Calendar arithmetic keeps DST
// transitions from skipping or repeating a day.
func AddDays(key string, n int) (string, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return "", fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t.AddDate(0, 0, n).Format(DateKeyLayout), nil
}

// DatesBetween lists the keys from (inclusive) up to to (exclusive) in order.
// An empty slice is returned when from is not before to.
func DatesBetween(from, to string) ([]string, error) {
	start, err := time.Parse(DateKeyLayout, from)
	if err != nil {
		return nil, fmt.Errorf("parse date key %q: %w", from, err)
	}
	end, err := time.Parse(DateKeyLayout, to)
	if err != nil {
		return nil, fmt.Errorf("parse date key %q: %w", to, err)
	}
	var out []string
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateKeyLayout))
	}
	return out, nil
}
