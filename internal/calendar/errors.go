package calendar

import "errors"

var (
	// ErrInvalidRule is returned when a rule or series breaks the recurrence
	// invariants (missing pattern, mismatched frequencies, bad offsets, ...).
	ErrInvalidRule = errors.New("invalid recurrence rule")

	// ErrInvalidInstant is returned when an exclusion targets an instant the
	// series can never generate.
	ErrInvalidInstant = errors.New("instant is not an occurrence of the series")
)
