// Package dateutil does whole-day calendar arithmetic over canonical
// YYYY-MM-DD strings. Canonical strings compare correctly byte-wise, so the
// comparison helpers work on strings directly without parsing.
package dateutil

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("dateutil: invalid date %q: %w", s, err)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// AddDays shifts a canonical date by the given number of calendar days.
func AddDays(date string, days int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, days)), nil
}

// DaysBetween returns to-from in whole days; negative when to precedes from.
func DaysBetween(from, to string) (int, error) {
	f, err := Parse(from)
	if err != nil {
		return 0, err
	}
	t, err := Parse(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// Max returns the later of two canonical dates.
func Max(a, b string) string {
	if a > b {
		return a
	}
	return b
}

// InRange reports whether date lies in the half-open interval [start, end).
func InRange(date, start, end string) bool {
	return date >= start && date < end
}

// Overlap reports whether the half-open intervals [start1, end1) and
// [start2, end2) intersect.
func Overlap(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}
