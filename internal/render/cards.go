// Package render prints search results as text cards, one per record, with a
// summary footer.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/AbdulAhadRauf/best-train-finder/internal/search"
)

const divider = "----------------------------------------"

type Renderer struct {
	w io.Writer
}

func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Results prints one card per ranked record followed by the fare summary, or
// the outcome message when the result set is empty.
func (r *Renderer) Results(res *search.Result) {
	if len(res.Records) == 0 {
		fmt.Fprintln(r.w, res.Outcome.Message())
		return
	}

	for _, rec := range res.Records {
		r.card(rec)
	}

	if res.Summary != nil {
		s := res.Summary
		fmt.Fprintf(r.w, "Fares: min ₹%.2f / mean ₹%.0f / max ₹%.2f | Fastest: %s\n",
			s.MinFare, s.MeanFare, s.MaxFare, s.FastestDuration)
	}
}

func (r *Renderer) card(rec search.RankedRecord) {
	fmt.Fprintf(r.w, "%s (%s)\n", rec.TrainName, rec.TrainNumber)
	fmt.Fprintf(r.w, "  %s (%s) -> %s (%s)\n",
		rec.DepartureTime, rec.FromStation, rec.ArrivalTime, rec.ToStation)
	fmt.Fprintf(r.w, "  Duration: %s | Date: %s | %s\n",
		rec.Duration, rec.TravelDate, rec.DeparturePeriod)

	fare := "n/a"
	if rec.Fare != nil {
		fare = fmt.Sprintf("₹%.2f", *rec.Fare)
	}
	// "AVAILABLE-0012" reads better with the dash spaced out.
	fmt.Fprintf(r.w, "  %s  %s  %s\n",
		rec.BookingClass, fare, strings.ReplaceAll(rec.Availability, "-", " "))
	fmt.Fprintf(r.w, "  Last updated: %s\n", rec.LastUpdated)
	fmt.Fprintln(r.w, divider)
}

// FetchFailure prints the fetch-failed message with its reason.
func (r *Renderer) FetchFailure(err error) {
	fmt.Fprintf(r.w, "could not retrieve train data: %v\n", err)
}
