// Package search implements the availability pipeline: extraction of flat
// per-class records from the raw payload, filtering, ranking, departure
// classification, and summary statistics.
package search

import (
	"fmt"
	"strconv"
	"strings"
)

// ClassCodes lists the recognized booking class codes.
var ClassCodes = []string{"1A", "2A", "3A", "SL", "CC", "3E", "2S", "EA", "EC"}

// ValidClass reports whether code is a recognized booking class.
func ValidClass(code string) bool {
	for _, c := range ClassCodes {
		if c == code {
			return true
		}
	}
	return false
}

// AvailabilityRecord is one per-class availability row for one train instance.
// Records are never mutated after extraction; every pipeline stage returns a
// new slice.
type AvailabilityRecord struct {
	TrainNumber   string   `json:"train_number"`
	TrainName     string   `json:"train_name"`
	FromStation   string   `json:"from_station"`
	ToStation     string   `json:"to_station"`
	DepartureTime string   `json:"departure_time"`
	ArrivalTime   string   `json:"arrival_time"`
	Duration      string   `json:"duration"`
	TravelDate    string   `json:"travel_date"`
	BookingClass  string   `json:"booking_class"`
	Availability  string   `json:"availability_status"`
	Fare          *float64 `json:"fare"`
	LastUpdated   string   `json:"last_updated"`
}

// StatusAccepted reports whether an availability status token counts as
// bookable: anything starting with "AVAILABLE", or a front-of-queue waitlist
// position. Case-sensitive, no normalization.
func StatusAccepted(status string) bool {
	return strings.HasPrefix(status, "AVAILABLE") || status == "WL1" || status == "WL2"
}

// DurationMinutes parses the duration string (H:MM or HH:MM) into total
// minutes. Malformed durations return an error rather than a guess.
func (r *AvailabilityRecord) DurationMinutes() (int, error) {
	parts := strings.Split(r.Duration, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid duration format: %q", r.Duration)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid duration hours: %q", r.Duration)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration minutes: %q", r.Duration)
	}
	if h < 0 || m < 0 {
		return 0, fmt.Errorf("negative duration: %q", r.Duration)
	}
	return h*60 + m, nil
}

// parseClock parses an HH:MM time of day into minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time format: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time format: %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time out of range: %q", s)
	}
	return h*60 + m, nil
}
