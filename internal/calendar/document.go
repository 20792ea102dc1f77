package calendar

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/planner/internal/model"
)

var weekdayCodes = map[string]time.Weekday{
	"SU": time.Sunday,
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
}

// WeekdayCode returns the two-letter code ("MO", "TU", ...) for d.
func WeekdayCode(d time.Weekday) string {
	return strings.ToUpper(d.String()[:2])
}

func parseWeekday(code string) (time.Weekday, error) {
	d, ok := weekdayCodes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidRule, code)
	}
	return d, nil
}

// RuleFromDocument converts a stored rule document into a typed Rule. Every
// combination of fields that has no meaning is rejected with ErrInvalidRule.
func RuleFromDocument(doc model.RuleDocument) (Rule, error) {
	r := Rule{
		Anchor:     doc.DTStart,
		Exclusions: slices.Clone(doc.ExDate),
	}

	switch Frequency(strings.ToUpper(doc.Freq)) {
	case Weekly:
		if doc.ByMonthDay != nil {
			return Rule{}, fmt.Errorf("%w: bymonthday is not allowed for weekly rules", ErrInvalidRule)
		}
		days := make([]time.Weekday, 0, len(doc.ByWeekday))
		for _, w := range doc.ByWeekday {
			if w.N != 0 {
				return Rule{}, fmt.Errorf("%w: weekly rules take plain weekdays, got %s(%d)", ErrInvalidRule, w.Weekday, w.N)
			}
			d, err := parseWeekday(w.Weekday)
			if err != nil {
				return Rule{}, err
			}
			days = append(days, d)
		}
		r.Pattern = WeeklyOn{Days: days}
	case Monthly:
		switch {
		case doc.ByMonthDay != nil && len(doc.ByWeekday) > 0:
			return Rule{}, fmt.Errorf("%w: monthly rule has both bymonthday and byweekday", ErrInvalidRule)
		case doc.ByMonthDay != nil:
			r.Pattern = MonthlyByDay{Day: *doc.ByMonthDay}
		case len(doc.ByWeekday) == 1:
			d, err := parseWeekday(doc.ByWeekday[0].Weekday)
			if err != nil {
				return Rule{}, err
			}
			r.Pattern = MonthlyByOrdinalWeekday{Ordinal: doc.ByWeekday[0].N, Weekday: d}
		case len(doc.ByWeekday) > 1:
			return Rule{}, fmt.Errorf("%w: monthly rule takes a single ordinal weekday", ErrInvalidRule)
		default:
			return Rule{}, fmt.Errorf("%w: monthly rule needs bymonthday or byweekday", ErrInvalidRule)
		}
	default:
		return Rule{}, fmt.Errorf("%w: unsupported frequency %q", ErrInvalidRule, doc.Freq)
	}

	switch {
	case doc.Count != nil && doc.Until != nil:
		return Rule{}, fmt.Errorf("%w: count and until are mutually exclusive", ErrInvalidRule)
	case doc.Count != nil:
		r.Termination = AfterCount{N: *doc.Count}
	case doc.Until != nil:
		r.Termination = Until{Date: *doc.Until}
	default:
		r.Termination = Never{}
	}

	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// Document is the inverse of RuleFromDocument.
func (r Rule) Document() model.RuleDocument {
	doc := model.RuleDocument{
		Freq:    string(r.Frequency()),
		DTStart: r.Anchor,
		ExDate:  slices.Clone(r.Exclusions),
	}
	switch p := r.Pattern.(type) {
	case WeeklyOn:
		for _, d := range p.Days {
			doc.ByWeekday = append(doc.ByWeekday, model.WeekdaySpec{Weekday: WeekdayCode(d)})
		}
	case MonthlyByDay:
		day := p.Day
		doc.ByMonthDay = &day
	case MonthlyByOrdinalWeekday:
		doc.ByWeekday = []model.WeekdaySpec{{Weekday: WeekdayCode(p.Weekday), N: p.Ordinal}}
	}
	switch t := r.termination().(type) {
	case AfterCount:
		n := t.N
		doc.Count = &n
	case Until:
		until := t.Date
		doc.Until = &until
	}
	return doc
}

// SeriesFromRecord builds and validates the series stored in rec.
func SeriesFromRecord(rec model.RecurringEvent) (Series, error) {
	start, err := RuleFromDocument(rec.RuleStart)
	if err != nil {
		return Series{}, fmt.Errorf("rruleStart: %w", err)
	}
	end, err := RuleFromDocument(rec.RuleEnd)
	if err != nil {
		return Series{}, fmt.Errorf("rruleEnd: %w", err)
	}
	s := Series{
		ID:    rec.ID,
		Title: rec.Title,
		Color: deref(rec.Color),
		Start: start,
		End:   end,
	}
	if err := s.Validate(); err != nil {
		return Series{}, err
	}
	return s, nil
}

// EventFromRecord adapts a stored single event for merging.
func EventFromRecord(rec model.Event) SingleEvent {
	return SingleEvent{
		ID:    rec.ID,
		Title: rec.Title,
		Color: deref(rec.Color),
		Start: rec.Start,
		End:   rec.End,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
