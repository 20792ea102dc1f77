package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

// The generator must agree with a general RFC 5545 implementation for every
// pattern it supports.
func TestOccurrences_MatchRRule(t *testing.T) {
	rules := []Rule{
		{Anchor: date(2024, 1, 1, 9, 0), Pattern: WeeklyOn{Days: []time.Weekday{time.Monday, time.Friday}}},
		{Anchor: date(2024, 1, 3, 7, 30), Pattern: WeeklyOn{Days: []time.Weekday{time.Sunday, time.Tuesday, time.Saturday}}},
		{Anchor: date(2024, 1, 31, 10, 0), Pattern: MonthlyByDay{Day: 31}},
		{Anchor: date(2024, 1, 5, 10, 0), Pattern: MonthlyByDay{Day: 30}, Termination: AfterCount{N: 9}},
		{Anchor: date(2024, 1, 16, 19, 0), Pattern: MonthlyByOrdinalWeekday{Ordinal: 3, Weekday: time.Tuesday}},
		{Anchor: date(2024, 1, 1, 17, 0), Pattern: MonthlyByOrdinalWeekday{Ordinal: -1, Weekday: time.Friday}},
		{Anchor: date(2024, 1, 1, 12, 0), Pattern: MonthlyByOrdinalWeekday{Ordinal: 5, Weekday: time.Thursday}},
		{Anchor: date(2024, 1, 1, 9, 0), Pattern: WeeklyOn{Days: []time.Weekday{time.Wednesday}},
			Termination: Until{Date: date(2024, 5, 1, 9, 0)}},
	}
	limit := date(2026, 1, 1, 0, 0)

	for _, r := range rules {
		t.Run(r.RRule(), func(t *testing.T) {
			rr, err := rrule.NewRRule(r.ROption())
			require.NoError(t, err)
			want := rr.Between(r.Anchor, limit, true)

			var got []time.Time
			for c := range Occurrences(r) {
				if c.After(limit) {
					break
				}
				got = append(got, c)
			}

			require.Equal(t, len(want), len(got))
			for i := range want {
				assert.True(t, want[i].Equal(got[i]), "index %d: want %s got %s", i, want[i], got[i])
			}
		})
	}
}

func TestRuleRRule(t *testing.T) {
	r := Rule{
		Anchor:      date(2024, 1, 1, 9, 0),
		Pattern:     WeeklyOn{Days: []time.Weekday{time.Monday, time.Friday}},
		Termination: AfterCount{N: 10},
	}
	s := r.RRule()
	assert.Contains(t, s, "FREQ=WEEKLY")
	assert.Contains(t, s, "COUNT=10")
	assert.Contains(t, s, "BYDAY=MO,FR")
	assert.NotContains(t, s, "DTSTART")

	m := Rule{
		Anchor:  date(2024, 1, 1, 9, 0),
		Pattern: MonthlyByOrdinalWeekday{Ordinal: -1, Weekday: time.Friday},
	}
	assert.Contains(t, m.RRule(), "BYDAY=-1FR")
}
