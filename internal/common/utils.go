package common

import "time"

// DateKey formats t as the provider's calendar-date key (2006-01-02) in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// DateOnly truncates t to midnight of its calendar date in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// SameDate reports whether a and b fall on the same calendar date in loc.
func SameDate(a, b time.Time, loc *time.Location) bool {
	return DateOnly(a, loc).Equal(DateOnly(b, loc))
}
