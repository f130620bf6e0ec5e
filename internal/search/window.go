package search

import "fmt"

// TimeWindow restricts results to a departure time-of-day range.
type TimeWindow string

const (
	WindowAny          TimeWindow = ""
	WindowEarlyMorning TimeWindow = "early-morning"
	WindowMorning      TimeWindow = "morning"
	WindowNoon         TimeWindow = "noon"
	WindowEvening      TimeWindow = "evening"
	WindowLateNight    TimeWindow = "late-night"
)

// Window bounds in minutes since midnight, inclusive on both ends.
// Morning and Noon overlap by an hour; the overlap is intentional, a train
// departing 12:30 shows up under either window.
var windowBounds = map[TimeWindow][2]int{
	WindowEarlyMorning: {5 * 60, 9 * 60},
	WindowMorning:      {9 * 60, 13 * 60},
	WindowNoon:         {12 * 60, 17 * 60},
	WindowEvening:      {17 * 60, 20 * 60},
}

// Late-night bounds: 20:00 onwards, wrapping past midnight to 05:00.
const (
	lateNightStart = 20 * 60
	lateNightEnd   = 5 * 60
)

// ParseTimeWindow maps a user-supplied window label onto a TimeWindow.
// "any" and the empty string mean no window filter.
func ParseTimeWindow(s string) (TimeWindow, error) {
	switch TimeWindow(s) {
	case WindowAny, WindowEarlyMorning, WindowMorning, WindowNoon, WindowEvening, WindowLateNight:
		return TimeWindow(s), nil
	}
	if s == "any" {
		return WindowAny, nil
	}
	return WindowAny, fmt.Errorf("unknown time window: %q", s)
}

// Contains reports whether a departure at minuteOfDay falls inside the window.
func (w TimeWindow) Contains(minuteOfDay int) bool {
	switch w {
	case WindowAny:
		return true
	case WindowLateNight:
		return minuteOfDay >= lateNightStart || minuteOfDay <= lateNightEnd
	}
	bounds, ok := windowBounds[w]
	if !ok {
		return false
	}
	return minuteOfDay >= bounds[0] && minuteOfDay <= bounds[1]
}
