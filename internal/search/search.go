package search

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AbdulAhadRauf/best-train-finder/internal/api/tbs"
	"github.com/AbdulAhadRauf/best-train-finder/internal/cache"
)

// Source is the availability endpoint the pipeline pulls from.
type Source interface {
	Fetch(ctx context.Context, from, to, date string) (*tbs.AvailabilityResponse, error)
}

// Query holds the parameters of one search. Station codes are expected
// uppercased by the caller.
type Query struct {
	From               string
	To                 string
	Date               string
	Classes            []string
	SortBy             SortKey
	Window             TimeWindow
	MaxDurationHours   int
	IncludeNearbyDates bool
}

// Validate checks the caller-supplied parameters before a search runs.
func (q *Query) Validate() error {
	if q.From == "" || q.To == "" || q.Date == "" {
		return fmt.Errorf("from, to, and date are required")
	}
	if len(q.Classes) == 0 {
		return fmt.Errorf("at least one booking class is required")
	}
	for _, c := range q.Classes {
		if !ValidClass(c) {
			return fmt.Errorf("unknown booking class: %q", c)
		}
	}
	if q.MaxDurationHours < 0 || q.MaxDurationHours > 48 {
		return fmt.Errorf("max duration hours must be between 1 and 48")
	}
	return nil
}

// Outcome distinguishes the empty-result cases so the caller can refine the
// right parameter.
type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeNoneFound means nothing survived extraction and base filtering.
	OutcomeNoneFound
	// OutcomeNoneInWindow means the time window alone emptied a non-empty set.
	OutcomeNoneInWindow
)

// Message returns the user-visible text for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeNoneFound:
		return "no trains found matching your criteria, try a different search"
	case OutcomeNoneInWindow:
		return "no trains found for the selected time window, try a different window or any time"
	default:
		return ""
	}
}

// RankedRecord is an AvailabilityRecord augmented with its part-of-day label
// for display grouping. The label is "Unknown" when the departure time cannot
// be classified.
type RankedRecord struct {
	AvailabilityRecord
	DeparturePeriod string `json:"departure_period"`
}

// Result is the output of one search: ranked records, summary statistics, and
// the outcome classification.
type Result struct {
	Records []RankedRecord
	Summary *Summary
	Outcome Outcome
}

// Searcher runs the full pipeline: fetch (through an optional payload cache),
// extract, filter, rank, classify, summarize. Searches are synchronous; the
// only blocking operation is the source fetch, bounded by the source's own
// timeout.
type Searcher struct {
	source Source
	cache  *cache.Cache[*tbs.AvailabilityResponse]
	logger *logrus.Logger
}

// NewSearcher creates a Searcher. payloadCache may be nil to disable
// memoization.
func NewSearcher(source Source, payloadCache *cache.Cache[*tbs.AvailabilityResponse], logger *logrus.Logger) *Searcher {
	return &Searcher{
		source: source,
		cache:  payloadCache,
		logger: logger,
	}
}

// Search executes one search. A fetch failure is returned as an error; every
// other degraded case yields an empty result with an explanatory outcome.
func (s *Searcher) Search(ctx context.Context, q Query) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	payload, err := s.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	records := Extract(payload, q.Classes)
	s.logger.WithFields(logrus.Fields{
		"from":    q.From,
		"to":      q.To,
		"date":    q.Date,
		"records": len(records),
	}).Debug("extracted availability records")

	filters := Filters{
		Window:             q.Window,
		MaxDurationHours:   q.MaxDurationHours,
		ExactDate:          q.Date,
		IncludeNearbyDates: q.IncludeNearbyDates,
	}

	filtered := filters.Apply(records)
	if len(filtered) == 0 {
		outcome := OutcomeNoneFound
		if q.Window != WindowAny && len(filters.WithoutWindow().Apply(records)) > 0 {
			outcome = OutcomeNoneInWindow
		}
		return &Result{Outcome: outcome}, nil
	}

	ranked := Rank(filtered, q.SortBy)

	out := make([]RankedRecord, len(ranked))
	for i, r := range ranked {
		period := "Unknown"
		if p, err := ClassifyDeparture(r.DepartureTime); err == nil {
			period = string(p)
		}
		out[i] = RankedRecord{AvailabilityRecord: r, DeparturePeriod: period}
	}

	summary, _ := Summarize(ranked)

	return &Result{
		Records: out,
		Summary: summary,
		Outcome: OutcomeOK,
	}, nil
}

func (s *Searcher) fetch(ctx context.Context, q Query) (*tbs.AvailabilityResponse, error) {
	key := q.From + "|" + q.To + "|" + q.Date

	if s.cache != nil {
		if payload, ok := s.cache.Get(key); ok {
			s.logger.WithField("key", key).Debug("availability payload served from cache")
			return payload, nil
		}
	}

	payload, err := s.source.Fetch(ctx, q.From, q.To, q.Date)
	if err != nil {
		return nil, fmt.Errorf("fetching availability: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(key, payload)
	}
	return payload, nil
}
