package calendar

import (
	"iter"
	"slices"
	"time"
)

// generation gives up past this year so a pattern that can never match again
// cannot spin forever.
const maxYear = 9999

// Occurrences yields the instants generated by r in ascending order, starting
// at the anchor and stopping at the termination condition. Exclusions are not
// applied. Under Never the sequence is unbounded; stop ranging when done.
func Occurrences(r Rule) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if r.Anchor.IsZero() || r.Pattern == nil {
			return
		}
		term := r.termination()
		n := 0
		for t := range candidates(r.Anchor, r.Pattern) {
			switch tm := term.(type) {
			case AfterCount:
				if n >= tm.N {
					return
				}
			case Until:
				if t.After(tm.Date) {
					return
				}
			}
			n++
			if !yield(t) {
				return
			}
		}
	}
}

func candidates(anchor time.Time, p Pattern) iter.Seq[time.Time] {
	switch p := p.(type) {
	case WeeklyOn:
		return weekly(anchor, p.Days)
	case MonthlyByDay:
		return monthly(anchor, func(year int, month time.Month) (int, bool) {
			if p.Day > daysIn(year, month) {
				return 0, false
			}
			return p.Day, true
		})
	case MonthlyByOrdinalWeekday:
		return monthly(anchor, func(year int, month time.Month) (int, bool) {
			return nthWeekday(year, month, p.Weekday, p.Ordinal)
		})
	}
	return func(func(time.Time) bool) {}
}

// weekly walks Monday-based weeks starting with the anchor's week.
func weekly(anchor time.Time, days []time.Weekday) iter.Seq[time.Time] {
	offsets := make([]int, 0, len(days))
	for _, d := range days {
		offsets = append(offsets, daysSinceMonday(d))
	}
	slices.Sort(offsets)
	offsets = slices.Compact(offsets)

	return func(yield func(time.Time) bool) {
		if len(offsets) == 0 {
			return
		}
		year, month, day := anchor.Date()
		monday := day - daysSinceMonday(anchor.Weekday())
		for week := 0; ; week++ {
			for _, off := range offsets {
				t := at(anchor, year, month, monday+7*week+off)
				if t.Year() > maxYear {
					return
				}
				if t.Before(anchor) {
					continue
				}
				if !yield(t) {
					return
				}
			}
		}
	}
}

// monthly walks calendar months starting with the anchor's month; pick
// returns the day to use in a month, or false to skip the month.
func monthly(anchor time.Time, pick func(int, time.Month) (int, bool)) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		year, month, _ := anchor.Date()
		for i := 0; ; i++ {
			first := time.Date(year, month+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
			if first.Year() > maxYear {
				return
			}
			day, ok := pick(first.Year(), first.Month())
			if !ok {
				continue
			}
			t := at(anchor, first.Year(), first.Month(), day)
			if t.Before(anchor) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// at places the anchor's wall-clock time on the given date.
func at(anchor time.Time, year int, month time.Month, day int) time.Time {
	h, m, s := anchor.Clock()
	return time.Date(year, month, day, h, m, s, anchor.Nanosecond(), anchor.Location())
}

func daysSinceMonday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// nthWeekday returns the day of month of the nth wd in the month; negative n
// counts back from the end.
func nthWeekday(year int, month time.Month, wd time.Weekday, n int) (int, bool) {
	last := daysIn(year, month)
	var day int
	if n > 0 {
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
		day = 1 + (int(wd)-int(first)+7)%7 + 7*(n-1)
	} else {
		lastWd := time.Date(year, month, last, 0, 0, 0, 0, time.UTC).Weekday()
		day = last - (int(lastWd)-int(wd)+7)%7 - 7*(-n-1)
	}
	if day < 1 || day > last {
		return 0, false
	}
	return day, true
}
