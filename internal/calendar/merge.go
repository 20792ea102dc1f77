package calendar

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"
)

// SingleEvent is a one-off entry with no recurrence rule.
type SingleEvent struct {
	ID    string
	Title string
	Color string
	Start time.Time
	End   time.Time
}

// MergeWindow combines the single events touching the window's days with the
// expanded occurrences of every series, ordered by start time.
//
// A series that fails validation is left out; the returned error joins one
// error per skipped series while the slice still holds everything else.
func MergeWindow(events []SingleEvent, series []Series, windowStart, windowEnd time.Time) ([]Occurrence, error) {
	from, to := civilDay(windowStart), civilDay(windowEnd)
	out := make([]Occurrence, 0, len(events))
	if from.After(to) {
		return out, nil
	}

	for _, ev := range events {
		if civilDay(ev.Start).After(to) || civilDay(ev.End).Before(from) {
			continue
		}
		out = append(out, Occurrence{
			ID:    ev.ID,
			Title: ev.Title,
			Color: ev.Color,
			Start: ev.Start,
			End:   ev.End,
		})
	}

	var errs []error
	for _, s := range series {
		seq, err := Expand(s, windowStart, windowEnd)
		if err != nil {
			errs = append(errs, fmt.Errorf("series %q: %w", s.ID, err))
			continue
		}
		for o := range seq {
			out = append(out, o)
		}
	}

	slices.SortStableFunc(out, func(a, b Occurrence) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		if c := a.End.Compare(b.End); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, errors.Join(errs...)
}
