// Package timeframe resolves caller-selected trailing windows and the
// comparison window used for period-over-period growth.
package timeframe

import (
	"time"
)

// WindowToken represents the available trailing range options
type WindowToken string

const (
	WindowLast7Days    WindowToken = "7d"
	WindowLast30Days   WindowToken = "30d"
	WindowLast90Days   WindowToken = "90d"
	WindowLast12Months WindowToken = "1y"

	// DefaultWindow is used for empty or unrecognized tokens.
	DefaultWindow WindowToken = WindowLast30Days
)

// Bucket limits for trend display.
const (
	MaxDailyBuckets   = 30
	MaxMonthlyBuckets = 6
)

// Clock abstracts the current time so window math is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock backed by the system time in UTC.
type SystemClock struct{}

// Now returns the current time in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ParseToken normalizes a raw window token. Unrecognized tokens fall back to
// the default window rather than failing.
func ParseToken(raw string) WindowToken {
	switch WindowToken(raw) {
	case WindowLast7Days, WindowLast30Days, WindowLast90Days, WindowLast12Months:
		return WindowToken(raw)
	default:
		return DefaultWindow
	}
}

// Days returns the trailing span of the token in days.
func (t WindowToken) Days() int {
	switch t {
	case WindowLast7Days:
		return 7
	case WindowLast30Days:
		return 30
	case WindowLast90Days:
		return 90
	case WindowLast12Months:
		return 365
	default:
		return 30
	}
}

// Window is a resolved trailing time span. Current covers [Cutoff, Now];
// the comparison window covers [CompareCutoff, Cutoff) and is used only for
// growth computation. Instants before CompareCutoff are outside both.
type Window struct {
	Token         WindowToken
	Now           time.Time
	Cutoff        time.Time
	CompareCutoff time.Time
}

// Resolve builds a Window from a raw token against the given clock.
func Resolve(raw string, clock Clock) Window {
	token := ParseToken(raw)
	now := clock.Now().UTC()
	days := token.Days()

	return Window{
		Token:         token,
		Now:           now,
		Cutoff:        now.AddDate(0, 0, -days),
		CompareCutoff: now.AddDate(0, 0, -2*days),
	}
}

// InCurrent reports whether t falls inside the current window.
func (w Window) InCurrent(t time.Time) bool {
	return !t.Before(w.Cutoff)
}

// InComparison reports whether t falls inside the comparison window.
func (w Window) InComparison(t time.Time) bool {
	return !t.Before(w.CompareCutoff) && t.Before(w.Cutoff)
}

// Days returns the span of the window in days.
func (w Window) Days() int {
	return w.Token.Days()
}

// DayKey returns the calendar-day bucket key for t ("2006-01-02", UTC).
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthKey returns a sortable calendar-month bucket key for t ("2006-01", UTC).
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// MonthLabel converts a sortable month key into the short display name
// ("Jan".."Dec"). Malformed keys are returned unchanged.
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan")
}
