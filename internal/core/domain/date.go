package domain

import (
	"fmt"
	"time"
)

// DateFormat is the canonical ISO-8601 day format used for all ledger dates.
const DateFormat = "2006-01-02"

// Date represents a calendar date with day granularity, stored as "YYYY-MM-DD".
// In this normalized form lexicographic comparison is chronological comparison,
// which is what every period-lock and closing-range check relies on.
type Date string

// ParseDate parses and normalizes an ISO calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, want format %q: %w", s, DateFormat, err)
	}
	return Date(t.Format(DateFormat)), nil
}

// NewDateFromTime truncates a time.Time to its calendar date in UTC.
func NewDateFromTime(t time.Time) Date {
	return Date(t.UTC().Format(DateFormat))
}

// Today returns the current date in UTC.
func Today() Date {
	return NewDateFromTime(time.Now())
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	t, _ := time.Parse(DateFormat, string(d))
	return t
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d == "" }

// Before reports whether d falls strictly before x.
func (d Date) Before(x Date) bool { return d < x }

// After reports whether d falls strictly after x.
func (d Date) After(x Date) bool { return d > x }

// OnOrBefore reports whether d falls on or before x.
func (d Date) OnOrBefore(x Date) bool { return d <= x }

// String returns the canonical "YYYY-MM-DD" form.
func (d Date) String() string { return string(d) }
