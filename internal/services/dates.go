package services

import (
	"fmt"
	"math"
	"time"
)

// DateKeyLayout is the canonical YYYY-MM-DD form used as map key for
// every per-date bucket. Keys in this form sort lexically in calendar
// order.
const DateKeyLayout = "2006-01-02"

// FormatDate renders the local calendar day of value as a date key.
func FormatDate(value time.Time) string {
	return value.Format(DateKeyLayout)
}

// ParseDate reconstructs a date key as a concrete time anchored at
// local midday. The midday anchor keeps day-difference arithmetic
// stable across daylight-saving transitions, where midnight-anchored
// dates can be 23 or 25 hours apart.
func ParseDate(key string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.Local
	}
	parsed, err := time.ParseInLocation(DateKeyLayout, key, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	year, month, day := parsed.Date()
	return time.Date(year, month, day, 12, 0, 0, 0, location), nil
}

// NormalizeDate strips time-of-day down to local midday. All day
// comparisons in the engines operate on normalized dates.
func NormalizeDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 12, 0, 0, 0, value.Location())
}

// AddMonths performs calendar-month addition with end-of-month
// clamping: Jan 31 plus one month lands on the last day of February,
// never on March 2 or 3. The result is normalized.
func AddMonths(value time.Time, months int) time.Time {
	year, month, day := value.Date()
	firstOfTarget := time.Date(year, time.Month(int(month)+months), 1, 12, 0, 0, 0, value.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 12, 0, 0, 0, value.Location())
}

// AddDays moves a normalized date by whole calendar days.
func AddDays(value time.Time, days int) time.Time {
	return NormalizeDate(value.AddDate(0, 0, days))
}

// DaysBetween counts whole calendar days from one date to another,
// negative when to precedes from. Both ends are normalized first.
func DaysBetween(from time.Time, to time.Time) int {
	delta := NormalizeDate(to).Sub(NormalizeDate(from))
	return int(math.Round(delta.Hours() / 24))
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a time.Time, b time.Time) bool {
	return FormatDate(a) == FormatDate(b)
}
