package shared

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar days
const DateLayout = "2006-01-02"

// MonthLayout is the wire format for calendar months
const MonthLayout = "2006-01"

// DayOf truncates t to midnight UTC of its calendar day.
// Calendar days are always compared in this normalized form.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized calendar day
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, NewValidationError(fmt.Sprintf("invalid date %q, use YYYY-MM-DD", s))
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM string
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, NewValidationError(fmt.Sprintf("invalid month %q, use YYYY-MM", s))
	}
	return t.Year(), t.Month(), nil
}

// MonthBounds returns the first and last calendar day of the month
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// SameMonth reports whether day falls in year/month
func SameMonth(day time.Time, year int, month time.Month) bool {
	return day.Year() == year && day.Month() == month
}
