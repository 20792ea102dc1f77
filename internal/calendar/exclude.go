package calendar

import (
	"fmt"
	"slices"
	"time"
)

// ExcludeInstance removes the instance starting at occurrenceStart from s by
// adding it to the start rule's exclusions and its end instant to the end
// rule's. Excluding an instant twice has no further effect. The input series
// is left untouched.
func ExcludeInstance(s Series, occurrenceStart time.Time) (Series, error) {
	if err := s.Validate(); err != nil {
		return s, err
	}
	if !s.Start.Produces(occurrenceStart) {
		return s, fmt.Errorf("%w: %s in series %q",
			ErrInvalidInstant, occurrenceStart.Format(time.RFC3339), s.ID)
	}

	out := s
	out.Start.Exclusions = addExclusion(s.Start.Exclusions, occurrenceStart)
	out.End.Exclusions = addExclusion(s.End.Exclusions, occurrenceStart.Add(s.Offset()))
	return out, nil
}

func addExclusion(list []time.Time, t time.Time) []time.Time {
	out := slices.Clone(list)
	if slices.ContainsFunc(out, t.Equal) {
		return out
	}
	return append(out, t)
}
