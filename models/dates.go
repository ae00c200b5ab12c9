package models

import "time"

// Calendar-day helpers. Streak and daily-login idempotency compare whole
// days, never raw timestamps or formatted strings, to keep behavior stable
// across time-of-day and DST boundaries. All day math is done in UTC.

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameCalendarDay reports whether a and b fall on the same UTC calendar day.
func SameCalendarDay(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}

// DaysBetween returns the whole calendar days from a to b (positive when b
// is later).
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// DayKey renders the storage key for a calendar day. Used only as a map
// key in persisted blobs, never for comparisons.
func DayKey(t time.Time) string {
	return DateOf(t).Format("2006-01-02")
}
