package calendar

import (
	"fmt"
	"slices"
	"time"
)

type Frequency string

const (
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
)

// Pattern selects the days a rule lands on. The set of implementations is
// closed: WeeklyOn, MonthlyByDay and MonthlyByOrdinalWeekday.
type Pattern interface {
	Frequency() Frequency
	validate() error
}

// WeeklyOn repeats every week on each of Days.
type WeeklyOn struct {
	Days []time.Weekday
}

func (WeeklyOn) Frequency() Frequency { return Weekly }

func (p WeeklyOn) validate() error {
	if len(p.Days) == 0 {
		return fmt.Errorf("%w: weekly rule needs at least one weekday", ErrInvalidRule)
	}
	for _, d := range p.Days {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidRule, d)
		}
	}
	return nil
}

// MonthlyByDay repeats every month on a fixed day of the month. Months that
// do not have that day (e.g. the 31st in April) are skipped.
type MonthlyByDay struct {
	Day int
}

func (MonthlyByDay) Frequency() Frequency { return Monthly }

func (p MonthlyByDay) validate() error {
	if p.Day < 1 || p.Day > 31 {
		return fmt.Errorf("%w: day of month %d out of range 1..31", ErrInvalidRule, p.Day)
	}
	return nil
}

// MonthlyByOrdinalWeekday repeats every month on the Nth weekday of the month.
// Ordinal is 1..5 counting from the start, or -1..-5 counting from the end
// (-1 is the last one). Months without that weekday are skipped.
type MonthlyByOrdinalWeekday struct {
	Ordinal int
	Weekday time.Weekday
}

func (MonthlyByOrdinalWeekday) Frequency() Frequency { return Monthly }

func (p MonthlyByOrdinalWeekday) validate() error {
	if p.Ordinal == 0 || p.Ordinal < -5 || p.Ordinal > 5 {
		return fmt.Errorf("%w: ordinal %d out of range", ErrInvalidRule, p.Ordinal)
	}
	if p.Weekday < time.Sunday || p.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d out of range", ErrInvalidRule, p.Weekday)
	}
	return nil
}

// Termination ends a rule: Never, AfterCount or Until.
type Termination interface {
	validate() error
}

type Never struct{}

func (Never) validate() error { return nil }

// AfterCount stops after N generated instants, counted from the anchor.
type AfterCount struct {
	N int
}

func (t AfterCount) validate() error {
	if t.N < 1 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidRule, t.N)
	}
	return nil
}

// Until stops once an instant is later than Date. Date itself is included.
type Until struct {
	Date time.Time
}

func (t Until) validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: until date is empty", ErrInvalidRule)
	}
	return nil
}

// Rule is one axis of a recurring series. Every generated instant reuses the
// anchor's wall-clock time in the anchor's location.
type Rule struct {
	Anchor      time.Time
	Pattern     Pattern
	Termination Termination
	Exclusions  []time.Time
}

func (r Rule) Validate() error {
	if r.Anchor.IsZero() {
		return fmt.Errorf("%w: anchor is empty", ErrInvalidRule)
	}
	if r.Pattern == nil {
		return fmt.Errorf("%w: no weekday or day-of-month selection", ErrInvalidRule)
	}
	if err := r.Pattern.validate(); err != nil {
		return err
	}
	return r.termination().validate()
}

func (r Rule) Frequency() Frequency {
	if r.Pattern == nil {
		return ""
	}
	return r.Pattern.Frequency()
}

func (r Rule) termination() Termination {
	if r.Termination == nil {
		return Never{}
	}
	return r.Termination
}

// Excludes reports whether t is one of the rule's exclusion dates.
func (r Rule) Excludes(t time.Time) bool {
	return slices.ContainsFunc(r.Exclusions, t.Equal)
}

// Produces reports whether the rule generates t, ignoring exclusions. Only a
// count-limited rule walks its instants, and then no further than t.
func (r Rule) Produces(t time.Time) bool {
	if !r.matches(t) {
		return false
	}
	switch tm := r.termination().(type) {
	case Until:
		return !t.After(tm.Date)
	case AfterCount:
		for c := range Occurrences(r) {
			if !c.Before(t) {
				return c.Equal(t)
			}
		}
		return false
	}
	return true
}

// matches reports whether t falls on the pattern at the anchor's wall-clock
// time, on or after the anchor. Termination is not considered.
func (r Rule) matches(t time.Time) bool {
	if r.Anchor.IsZero() || r.Pattern == nil || t.Before(r.Anchor) {
		return false
	}
	year, month, day := t.In(r.Anchor.Location()).Date()
	if year > maxYear || !at(r.Anchor, year, month, day).Equal(t) {
		return false
	}
	switch p := r.Pattern.(type) {
	case WeeklyOn:
		return slices.Contains(p.Days, time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday())
	case MonthlyByDay:
		return day == p.Day
	case MonthlyByOrdinalWeekday:
		d, ok := nthWeekday(year, month, p.Weekday, p.Ordinal)
		return ok && d == day
	}
	return false
}

func sameTermination(a, b Termination) bool {
	switch x := a.(type) {
	case Never:
		_, ok := b.(Never)
		return ok
	case AfterCount:
		y, ok := b.(AfterCount)
		return ok && x.N == y.N
	case Until:
		y, ok := b.(Until)
		return ok && x.Date.Equal(y.Date)
	}
	return false
}
