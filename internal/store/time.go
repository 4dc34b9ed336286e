package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Timestamps are stored as fixed-width RFC3339 UTC text so they sort
// lexically in both dialects; calendar dates are stored as YYYY-MM-DD.
const (
	timestampLayout = "2006-01-02T15:04:05.000000Z"
	DateLayout      = "2006-01-02"
)

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: parse time %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate reads a calendar date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: parse date %q: %w", s, err)
	}
	return t, nil
}

// NullDate converts a nullable date column into a pointer.
func NullDate(ns sql.NullString, loc *time.Location) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := ParseDate(ns.String, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DateValue is the inverse of NullDate.
func DateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatDate(*t)
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween counts calendar days from a to b in loc. DST shifts are
// absorbed by rounding through civil dates rather than dividing durations.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
