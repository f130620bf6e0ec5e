package search

import (
	"strconv"
	"strings"

	"github.com/AbdulAhadRauf/best-train-finder/internal/api/tbs"
)

// Extract flattens the raw availability payload into one record per requested
// booking class per train. Direct trains come first, alternates appended.
// Trains without a well-formed class list are skipped silently; class entries
// that are not requested or not bookable never become records. Malformed
// sub-structures are skipped, never fatal.
func Extract(resp *tbs.AvailabilityResponse, requestedClasses []string) []AvailabilityRecord {
	if resp == nil {
		return nil
	}

	requested := make(map[string]bool, len(requestedClasses))
	for _, c := range requestedClasses {
		requested[c] = true
	}

	var records []AvailabilityRecord
	for _, train := range resp.Trains() {
		for _, entry := range train.ClassEntries() {
			if !requested[entry.BookingClass] {
				continue
			}
			status := strings.TrimSpace(entry.Availability)
			if !StatusAccepted(status) {
				continue
			}

			fare, lastUpdated := firstFare(entry.Fares())
			records = append(records, AvailabilityRecord{
				TrainNumber:   train.TrainNumber,
				TrainName:     train.TrainName,
				FromStation:   train.FromStationName,
				ToStation:     train.ToStationName,
				DepartureTime: train.DepartureTime,
				ArrivalTime:   train.ArrivalTime,
				Duration:      train.Duration,
				TravelDate:    train.TrainDate,
				BookingClass:  entry.BookingClass,
				Availability:  status,
				Fare:          fare,
				LastUpdated:   lastUpdated,
			})
		}
	}
	return records
}

// firstFare reads fare and last-updated text from the first element of the
// fare-info list. An absent or empty list yields (nil, "N/A"); an unparsable
// fare yields nil so the filter stage drops the record.
func firstFare(fares []tbs.FareInfo) (*float64, string) {
	if len(fares) == 0 {
		return nil, "N/A"
	}

	lastUpdated := fares[0].CacheText
	if lastUpdated == "" {
		lastUpdated = "N/A"
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(string(fares[0].TicketFare)), 64)
	if err != nil {
		return nil, lastUpdated
	}
	return &f, lastUpdated
}
