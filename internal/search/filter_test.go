package search

import (
	"reflect"
	"testing"
)

func fare(v float64) *float64 {
	return &v
}

func record(train string, mods ...func(*AvailabilityRecord)) AvailabilityRecord {
	r := AvailabilityRecord{
		TrainNumber:   train,
		TrainName:     "Test Express",
		DepartureTime: "06:00",
		ArrivalTime:   "11:30",
		Duration:      "5:30",
		TravelDate:    "2025-08-15",
		BookingClass:  "CC",
		Availability:  "AVAILABLE-0010",
		Fare:          fare(450),
		LastUpdated:   "N/A",
	}
	for _, mod := range mods {
		mod(&r)
	}
	return r
}

func TestFiltersBaseline(t *testing.T) {
	f := Filters{ExactDate: "2025-08-15"}

	// One well-formed record survives untouched.
	out := f.Apply([]AvailabilityRecord{record("1")})
	if len(out) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(out))
	}
	if mins, err := out[0].DurationMinutes(); err != nil || mins != 330 {
		t.Errorf("Expected duration 330 minutes, got %d (err %v)", mins, err)
	}
}

func TestFiltersFare(t *testing.T) {
	f := Filters{ExactDate: "2025-08-15"}

	records := []AvailabilityRecord{
		record("nil-fare", func(r *AvailabilityRecord) { r.Fare = nil }),
		record("zero-fare", func(r *AvailabilityRecord) { r.Fare = fare(0) }),
		record("negative-fare", func(r *AvailabilityRecord) { r.Fare = fare(-10) }),
		record("ok"),
	}

	out := f.Apply(records)
	if len(out) != 1 || out[0].TrainNumber != "ok" {
		t.Errorf("Expected only the positive-fare record, got %v", out)
	}
}

func TestFiltersStatus(t *testing.T) {
	f := Filters{ExactDate: "2025-08-15"}

	records := []AvailabilityRecord{
		record("na", func(r *AvailabilityRecord) { r.Availability = "NOT AVAILABLE" }),
		record("wl9", func(r *AvailabilityRecord) { r.Availability = "WL9" }),
		record("wl2", func(r *AvailabilityRecord) { r.Availability = "WL2" }),
	}

	out := f.Apply(records)
	if len(out) != 1 || out[0].TrainNumber != "wl2" {
		t.Errorf("Expected only WL2 record, got %v", out)
	}
}

func TestFiltersDateMatch(t *testing.T) {
	records := []AvailabilityRecord{
		record("wanted"),
		record("nearby", func(r *AvailabilityRecord) { r.TravelDate = "2025-08-16" }),
	}

	strict := Filters{ExactDate: "2025-08-15"}
	out := strict.Apply(records)
	if len(out) != 1 || out[0].TrainNumber != "wanted" {
		t.Errorf("Expected nearby-date record dropped, got %v", out)
	}

	nearby := Filters{ExactDate: "2025-08-15", IncludeNearbyDates: true}
	out = nearby.Apply(records)
	if len(out) != 2 {
		t.Errorf("Expected both records with nearby dates included, got %d", len(out))
	}
}

func TestFiltersDuration(t *testing.T) {
	f := Filters{ExactDate: "2025-08-15", MaxDurationHours: 2}

	records := []AvailabilityRecord{
		record("too-long", func(r *AvailabilityRecord) { r.Duration = "2:30" }),
		record("fits", func(r *AvailabilityRecord) { r.Duration = "1:30" }),
		record("malformed", func(r *AvailabilityRecord) { r.Duration = "90" }),
	}

	out := f.Apply(records)
	if len(out) != 1 || out[0].TrainNumber != "fits" {
		t.Errorf("Expected only the 90-minute record, got %v", out)
	}

	// A malformed duration drops even without a cap.
	uncapped := Filters{ExactDate: "2025-08-15"}
	out = uncapped.Apply(records)
	if len(out) != 2 {
		t.Errorf("Expected malformed duration dropped without cap, got %d records", len(out))
	}
}

func TestFiltersTimeWindow(t *testing.T) {
	at := func(train, dep string) AvailabilityRecord {
		return record(train, func(r *AvailabilityRecord) { r.DepartureTime = dep })
	}

	records := []AvailabilityRecord{
		at("2100", "21:00"),
		at("0400", "04:00"),
		at("1000", "10:00"),
	}

	lateNight := Filters{ExactDate: "2025-08-15", Window: WindowLateNight}
	out := lateNight.Apply(records)
	if len(out) != 2 {
		t.Fatalf("Expected 2 late-night records, got %d", len(out))
	}
	if out[0].TrainNumber != "2100" || out[1].TrainNumber != "0400" {
		t.Errorf("Late night kept wrong records: %v, %v", out[0].TrainNumber, out[1].TrainNumber)
	}

	morning := Filters{ExactDate: "2025-08-15", Window: WindowMorning}
	out = morning.Apply(records)
	if len(out) != 1 || out[0].TrainNumber != "1000" {
		t.Errorf("Expected only the 10:00 record in the morning window, got %v", out)
	}
}

func TestFiltersWindowOverlap(t *testing.T) {
	// A 12:30 departure belongs to both Morning and Noon. The overlap is
	// deliberate.
	r := record("1230", func(r *AvailabilityRecord) { r.DepartureTime = "12:30" })

	for _, w := range []TimeWindow{WindowMorning, WindowNoon} {
		f := Filters{ExactDate: "2025-08-15", Window: w}
		if out := f.Apply([]AvailabilityRecord{r}); len(out) != 1 {
			t.Errorf("Expected 12:30 departure inside %s window", w)
		}
	}
}

func TestFiltersWindowBoundariesInclusive(t *testing.T) {
	tests := []struct {
		window TimeWindow
		dep    string
		kept   bool
	}{
		{WindowEarlyMorning, "05:00", true},
		{WindowEarlyMorning, "09:00", true},
		{WindowEarlyMorning, "04:59", false},
		{WindowEarlyMorning, "09:01", false},
		{WindowMorning, "13:00", true},
		{WindowEvening, "17:00", true},
		{WindowEvening, "20:00", true},
		{WindowLateNight, "20:00", true},
		{WindowLateNight, "05:00", true},
		{WindowLateNight, "05:01", false},
		{WindowLateNight, "19:59", false},
		{WindowLateNight, "00:30", true},
	}

	for _, tt := range tests {
		f := Filters{ExactDate: "2025-08-15", Window: tt.window}
		r := record("x", func(r *AvailabilityRecord) { r.DepartureTime = tt.dep })
		if got := len(f.Apply([]AvailabilityRecord{r})) == 1; got != tt.kept {
			t.Errorf("Window %s at %s: kept=%v, want %v", tt.window, tt.dep, got, tt.kept)
		}
	}
}

func TestFiltersUnparsableDepartureTime(t *testing.T) {
	r := record("bad-time", func(r *AvailabilityRecord) { r.DepartureTime = "soon" })

	// Without a window the record survives; the departure time is not needed.
	noWindow := Filters{ExactDate: "2025-08-15"}
	if out := noWindow.Apply([]AvailabilityRecord{r}); len(out) != 1 {
		t.Errorf("Expected record kept without a window filter")
	}

	// With a window it cannot be classified, so it drops.
	windowed := Filters{ExactDate: "2025-08-15", Window: WindowMorning}
	if out := windowed.Apply([]AvailabilityRecord{r}); len(out) != 0 {
		t.Errorf("Expected unparsable departure dropped under a window filter")
	}
}

func TestFiltersIdempotent(t *testing.T) {
	f := Filters{ExactDate: "2025-08-15", Window: WindowMorning, MaxDurationHours: 8}

	records := []AvailabilityRecord{
		record("a", func(r *AvailabilityRecord) { r.DepartureTime = "10:00" }),
		record("b", func(r *AvailabilityRecord) { r.DepartureTime = "22:00" }),
		record("c", func(r *AvailabilityRecord) { r.DepartureTime = "11:00" }),
	}

	once := f.Apply(records)
	twice := f.Apply(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Filter is not a fixed point: %v != %v", once, twice)
	}
}

func TestFiltersPreserveOrderAndInput(t *testing.T) {
	records := []AvailabilityRecord{record("1"), record("2"), record("3")}
	f := Filters{ExactDate: "2025-08-15"}

	out := f.Apply(records)
	for i, r := range out {
		if want := records[i].TrainNumber; r.TrainNumber != want {
			t.Errorf("Order changed at %d: got %s, want %s", i, r.TrainNumber, want)
		}
	}

	// Input slice must be untouched.
	if len(records) != 3 {
		t.Errorf("Input slice mutated: %d records", len(records))
	}
}
