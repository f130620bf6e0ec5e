package search

import "errors"

// Period is a part-of-day bucket for a departure time, used for display
// grouping.
type Period string

const (
	PeriodMorning   Period = "Morning"
	PeriodAfternoon Period = "Afternoon"
	PeriodEvening   Period = "Evening"
	PeriodNight     Period = "Night"
)

// ErrBadTimeFormat is returned when a departure time cannot be parsed as
// HH:MM. The classifier never defaults silently; the renderer shows "Unknown"
// instead of a wrong label.
var ErrBadTimeFormat = errors.New("bad time format")

// ClassifyDeparture buckets an HH:MM departure time into its part of day.
func ClassifyDeparture(departureTime string) (Period, error) {
	mins, err := parseClock(departureTime)
	if err != nil {
		return "", ErrBadTimeFormat
	}
	hour := mins / 60
	switch {
	case hour >= 5 && hour < 12:
		return PeriodMorning, nil
	case hour >= 12 && hour < 17:
		return PeriodAfternoon, nil
	case hour >= 17 && hour < 21:
		return PeriodEvening, nil
	default:
		return PeriodNight, nil
	}
}
