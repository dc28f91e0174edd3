package domain

import "time"

// DateLayout is the canonical layout for bare calendar dates.
const DateLayout = "2006-01-02"

// ParseLocalDate parses a bare YYYY-MM-DD string as local midnight.
// Malformed input yields nil rather than an error.
func ParseLocalDate(s string) *time.Time {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

// MinDate returns the earliest non-nil date, or nil if all are nil.
func MinDate(dates ...*time.Time) *time.Time {
	var min *time.Time
	for _, d := range dates {
		if d == nil {
			continue
		}
		if min == nil || d.Before(*min) {
			min = d
		}
	}
	return min
}

// MaxDate returns the latest non-nil date, or nil if all are nil.
func MaxDate(dates ...*time.Time) *time.Time {
	var max *time.Time
	for _, d := range dates {
		if d == nil {
			continue
		}
		if max == nil || d.After(*max) {
			max = d
		}
	}
	return max
}

// TimeRatio returns the fraction of the [start, end] range elapsed as of now:
// 0 before start, 1 at or after end, linear in between. A range with
// end <= start is treated as not yet time-boxed and returns 0.
func TimeRatio(now, start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	if !now.After(start) {
		return 0
	}
	if !now.Before(end) {
		return 1
	}
	return float64(now.Sub(start)) / float64(end.Sub(start))
}

// DaysBetween returns the number of whole days from a to b, truncating both
// to local midnight first. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int(bd.Sub(ad) / (24 * time.Hour))
}

// SameDay reports whether two dates fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
