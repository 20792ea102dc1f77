package calendar

import (
	"fmt"
	"time"
)

// Series is a recurring event: a start rule and an end rule that share the
// same cadence, offset by a fixed duration.
type Series struct {
	ID    string
	Title string
	Color string
	Start Rule
	End   Rule
}

// Offset is the duration of every instance of the series.
func (s Series) Offset() time.Duration {
	return s.End.Anchor.Sub(s.Start.Anchor)
}

func (s Series) Validate() error {
	if err := s.Start.Validate(); err != nil {
		return fmt.Errorf("start rule: %w", err)
	}
	if err := s.End.Validate(); err != nil {
		return fmt.Errorf("end rule: %w", err)
	}
	if s.Start.Frequency() != s.End.Frequency() {
		return fmt.Errorf("%w: start rule is %s but end rule is %s",
			ErrInvalidRule, s.Start.Frequency(), s.End.Frequency())
	}
	if !sameTermination(s.Start.termination(), s.End.termination()) {
		return fmt.Errorf("%w: start and end rules terminate differently", ErrInvalidRule)
	}
	if s.Offset() <= 0 {
		return fmt.Errorf("%w: end anchor must be after start anchor", ErrInvalidRule)
	}
	return nil
}
