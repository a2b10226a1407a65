package utils

import "time"

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayWindow returns [midnight of today+days, midnight of today+days+1) in loc.
func DayWindow(now time.Time, days int, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(now, loc).AddDate(0, 0, days)
	return start, start.AddDate(0, 0, 1)
}
