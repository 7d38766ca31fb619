package format

import (
	"fmt"
	"time"
)

// DaysSince counts calendar days from date to now in now's location
func DaysSince(date, now time.Time) int {
	loc := now.Location()
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return int(end.Sub(start).Hours() / 24)
}

// Abbreviated renders how long ago date was: "Today", "3d", "2w", or the
// date itself past a month. Future dates render as the date.
func Abbreviated(date, now time.Time) string {
	days := DaysSince(date, now)
	switch {
	case days < 0:
		return date.In(now.Location()).Format("Jan 2")
	case days == 0:
		return "Today"
	case days < 7:
		return fmt.Sprintf("%dd", days)
	case days < 31:
		return fmt.Sprintf("%dw", days/7)
	case date.Year() == now.Year():
		return date.In(now.Location()).Format("Jan 2")
	default:
		return date.In(now.Location()).Format("Jan 2, 2006")
	}
}

// EventTime renders an event start in the event's own zone
func EventTime(start time.Time) string {
	return start.Format("Mon Jan 2, 3:04 PM MST")
}
