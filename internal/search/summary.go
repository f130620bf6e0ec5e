package search

import "math"

// Summary holds fare and duration statistics over a final result set.
type Summary struct {
	MinFare         float64 `json:"min_fare"`
	MeanFare        float64 `json:"mean_fare"`
	MaxFare         float64 `json:"max_fare"`
	FastestDuration string  `json:"fastest_duration"`
}

// Summarize computes min/mean/max fare and the fastest duration label over
// records. The mean is rounded to the nearest rupee for display. The fastest
// label is the original duration string of the first record with minimal
// duration. Returns (nil, false) for an empty input.
func Summarize(records []AvailabilityRecord) (*Summary, bool) {
	if len(records) == 0 {
		return nil, false
	}

	var sum float64
	minFare := math.Inf(1)
	maxFare := math.Inf(-1)
	fastestMins := -1
	fastestLabel := ""

	for _, r := range records {
		fare := fareOf(&r)
		sum += fare
		if fare < minFare {
			minFare = fare
		}
		if fare > maxFare {
			maxFare = fare
		}

		if mins, err := r.DurationMinutes(); err == nil {
			if fastestMins < 0 || mins < fastestMins {
				fastestMins = mins
				fastestLabel = r.Duration
			}
		}
	}

	return &Summary{
		MinFare:         minFare,
		MeanFare:        math.Round(sum / float64(len(records))),
		MaxFare:         maxFare,
		FastestDuration: fastestLabel,
	}, true
}
