package calendar

import (
	"time"

	"github.com/teambition/rrule-go"
)

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// ROption renders r as RFC 5545 recurrence options. Exclusions are not part
// of an RRULE and are left out.
func (r Rule) ROption() rrule.ROption {
	opt := rrule.ROption{
		Dtstart: r.Anchor,
		Wkst:    rrule.MO,
	}
	switch p := r.Pattern.(type) {
	case WeeklyOn:
		opt.Freq = rrule.WEEKLY
		for _, d := range p.Days {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
		}
	case MonthlyByDay:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{p.Day}
	case MonthlyByOrdinalWeekday:
		opt.Freq = rrule.MONTHLY
		wd := rruleWeekdays[p.Weekday]
		opt.Byweekday = []rrule.Weekday{wd.Nth(p.Ordinal)}
	}
	switch t := r.termination().(type) {
	case AfterCount:
		opt.Count = t.N
	case Until:
		opt.Until = t.Date
	}
	return opt
}

// RRule returns the RRULE property value, e.g. "FREQ=WEEKLY;BYDAY=MO,FR".
func (r Rule) RRule() string {
	opt := r.ROption()
	opt.Dtstart = time.Time{}
	return opt.RRuleString()
}
