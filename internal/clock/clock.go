// Package clock provides the injectable time source for the ledger core.
// Streaks, task windows and unlock timestamps all depend on "today", so the
// clock is passed into every service instead of calling time.Now directly —
// tests substitute a mock and walk it across simulated days.
package clock

import "time"

// DateLayout is the calendar-date format used for check-in records
// and date comparisons across the core.
const DateLayout = "2006-01-02"

// Clock is the time source injected into every tracker.
type Clock interface {
	// Now returns the current time in the application timezone.
	Now() time.Time
}

// systemClock reads the wall clock in a fixed location.
type systemClock struct {
	loc *time.Location
}

// System returns a Clock backed by the real wall clock in loc.
// Pass the location parsed from APP_TIMEZONE.
func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDate renders t as a YYYY-MM-DD calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
