package search

import (
	"fmt"
	"sort"
)

// SortKey selects the primary ranking criterion.
type SortKey string

const (
	SortCheapest SortKey = "cheapest"
	SortFastest  SortKey = "fastest"
)

// ParseSortKey maps a user-supplied sort label onto a SortKey. The empty
// string defaults to cheapest.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortCheapest, SortFastest:
		return SortKey(s), nil
	}
	if s == "" {
		return SortCheapest, nil
	}
	return SortCheapest, fmt.Errorf("unknown sort key: %q", s)
}

// Rank returns a sorted copy of records. Cheapest orders by fare then
// duration, fastest by duration then fare, both ascending. The sort is stable,
// so records tied on both keys keep their extraction order. Every record
// reaching this stage has a parseable fare and duration; the filter stage
// guarantees it.
func Rank(records []AvailabilityRecord, key SortKey) []AvailabilityRecord {
	out := make([]AvailabilityRecord, len(records))
	copy(out, records)

	switch key {
	case SortFastest:
		sort.SliceStable(out, func(i, j int) bool {
			di, dj := minutesOf(&out[i]), minutesOf(&out[j])
			if di != dj {
				return di < dj
			}
			return fareOf(&out[i]) < fareOf(&out[j])
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			fi, fj := fareOf(&out[i]), fareOf(&out[j])
			if fi != fj {
				return fi < fj
			}
			return minutesOf(&out[i]) < minutesOf(&out[j])
		})
	}
	return out
}

func fareOf(r *AvailabilityRecord) float64 {
	if r.Fare == nil {
		return 0
	}
	return *r.Fare
}

func minutesOf(r *AvailabilityRecord) int {
	m, _ := r.DurationMinutes()
	return m
}
