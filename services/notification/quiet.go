package notification

import (
	"time"

	"rentflow/models"
)

// InQuietHours reports whether local time t falls inside q. The window is
// [start, end) and wraps past midnight when end is before start.
func InQuietHours(q models.QuietHours, t time.Time) bool {
	if !q.Enabled {
		return false
	}
	start, ok1 := clockMinutes(q.Start)
	end, ok2 := clockMinutes(q.End)
	if !ok1 || !ok2 || start == end {
		return false
	}
	now := t.Hour()*60 + t.Minute()
	if start < end {
		return now >= start && now < end
	}
	return now >= start || now < end
}

func clockMinutes(s string) (int, bool) {
	c, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return c.Hour()*60 + c.Minute(), true
}
