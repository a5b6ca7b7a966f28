package spacedrep

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for every stored revision date.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrInvalidArgument, s, err)
	}
	return t, nil
}

// FormatDate renders t's calendar date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns now's calendar date in now's location.
func Today(now time.Time) string {
	return FormatDate(now)
}

// AddDays shifts a calendar date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns to - from in whole calendar days. The result is
// negative when to precedes from.
func DaysBetween(from, to string) (int, error) {
	a, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	b, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	// Both dates are midnight UTC, so the difference is an exact multiple of 24h.
	return int(b.Sub(a).Hours() / 24), nil
}
