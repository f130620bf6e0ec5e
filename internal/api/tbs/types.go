package tbs

import "encoding/json"

// AvailabilityResponse represents the response from the train-between-stations
// endpoint. Both train lists are optional; either may be absent or empty.
type AvailabilityResponse struct {
	TrainBetweenStations []Train `json:"train_between_stations"`
	AlternateTrains      []Train `json:"alternate_trains"`
}

// Trains returns the combined working set, direct trains first.
func (r *AvailabilityResponse) Trains() []Train {
	trains := make([]Train, 0, len(r.TrainBetweenStations)+len(r.AlternateTrains))
	trains = append(trains, r.TrainBetweenStations...)
	trains = append(trains, r.AlternateTrains...)
	return trains
}

// Train represents one train entry. Name, station, and time fields are passed
// through as-is; the upstream API omits them freely.
type Train struct {
	TrainNumber     string          `json:"train_number"`
	TrainName       string          `json:"extended_train_name"`
	FromStationName string          `json:"from_station_name"`
	ToStationName   string          `json:"to_station_name"`
	DepartureTime   string          `json:"from_sta"`
	ArrivalTime     string          `json:"to_sta"`
	Duration        string          `json:"duration"`
	TrainDate       string          `json:"train_date"`
	SeatData        json.RawMessage `json:"sa_data"`
}

// ClassEntries decodes the per-class availability list. The upstream API
// sometimes puts a non-list value in sa_data; any shape other than a list of
// objects yields nil.
func (t *Train) ClassEntries() []ClassAvailability {
	if len(t.SeatData) == 0 {
		return nil
	}
	var entries []ClassAvailability
	if err := json.Unmarshal(t.SeatData, &entries); err != nil {
		return nil
	}
	return entries
}

// ClassAvailability is one per-class seat-availability sub-entry.
// "availibility" and "seat_availibility" are upstream misspellings.
type ClassAvailability struct {
	BookingClass string          `json:"booking_class"`
	Availability string          `json:"availibility"`
	FareData     json.RawMessage `json:"seat_availibility"`
}

// Fares decodes the nested fare-info list, or nil if absent or malformed.
func (c *ClassAvailability) Fares() []FareInfo {
	if len(c.FareData) == 0 {
		return nil
	}
	var fares []FareInfo
	if err := json.Unmarshal(c.FareData, &fares); err != nil {
		return nil
	}
	return fares
}

// FareInfo carries the fare and cache metadata for a class.
type FareInfo struct {
	TicketFare Decimal `json:"ticket_fare"`
	CacheText  string  `json:"cache_text"`
}

// Decimal tolerates both string and numeric JSON encodings of a fare.
type Decimal string

func (d *Decimal) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*d = Decimal(n.String())
		return nil
	}
	*d = ""
	return nil
}
