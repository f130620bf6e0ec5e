package search

// Filters holds the predicates applied to extracted records. A record must
// pass every predicate to survive. Zero values disable the optional ones:
// an empty Window skips time filtering, MaxDurationHours of 0 skips the
// duration cap.
type Filters struct {
	Window             TimeWindow
	MaxDurationHours   int
	ExactDate          string
	IncludeNearbyDates bool
}

// Apply returns the records passing all predicates, in their input order.
// The input slice is never mutated. Apply is a fixed point: reapplying it to
// its own output changes nothing.
func (f Filters) Apply(records []AvailabilityRecord) []AvailabilityRecord {
	var out []AvailabilityRecord
	for _, r := range records {
		if f.keep(&r) {
			out = append(out, r)
		}
	}
	return out
}

func (f Filters) keep(r *AvailabilityRecord) bool {
	if r.Fare == nil || *r.Fare <= 0 {
		return false
	}
	if !StatusAccepted(r.Availability) {
		return false
	}
	if !f.IncludeNearbyDates && r.TravelDate != f.ExactDate {
		return false
	}

	mins, err := r.DurationMinutes()
	if err != nil {
		return false
	}
	if f.MaxDurationHours > 0 && mins > f.MaxDurationHours*60 {
		return false
	}

	if f.Window != WindowAny {
		// An unclassifiable departure time cannot be placed in any window.
		dep, err := parseClock(r.DepartureTime)
		if err != nil {
			return false
		}
		if !f.Window.Contains(dep) {
			return false
		}
	}
	return true
}

// WithoutWindow returns a copy of the filters with the time window disabled,
// used to tell "nothing matched" apart from "nothing in the chosen window".
func (f Filters) WithoutWindow() Filters {
	f.Window = WindowAny
	return f
}
