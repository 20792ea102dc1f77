package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/planner/internal/model"
)

func intPtr(n int) *int { return &n }

func TestRuleFromDocument(t *testing.T) {
	anchor := date(2024, 1, 1, 9, 0)
	until := date(2024, 6, 30, 0, 0)

	tests := []struct {
		name string
		doc  model.RuleDocument
		want Rule
	}{
		{
			name: "weekly never",
			doc: model.RuleDocument{
				Freq:      "weekly",
				DTStart:   anchor,
				ByWeekday: []model.WeekdaySpec{{Weekday: "MO"}, {Weekday: "fr"}},
			},
			want: Rule{Anchor: anchor, Pattern: WeeklyOn{Days: []time.Weekday{time.Monday, time.Friday}}, Termination: Never{}, Exclusions: nil},
		},
		{
			name: "monthly by day with count",
			doc: model.RuleDocument{
				Freq:       "MONTHLY",
				DTStart:    anchor,
				ByMonthDay: intPtr(15),
				Count:      intPtr(6),
			},
			want: Rule{Anchor: anchor, Pattern: MonthlyByDay{Day: 15}, Termination: AfterCount{N: 6}},
		},
		{
			name: "monthly last friday until",
			doc: model.RuleDocument{
				Freq:      "MONTHLY",
				DTStart:   anchor,
				ByWeekday: []model.WeekdaySpec{{Weekday: "FR", N: -1}},
				Until:     &until,
				ExDate:    []time.Time{date(2024, 2, 23, 9, 0)},
			},
			want: Rule{
				Anchor:      anchor,
				Pattern:     MonthlyByOrdinalWeekday{Ordinal: -1, Weekday: time.Friday},
				Termination: Until{Date: until},
				Exclusions:  []time.Time{date(2024, 2, 23, 9, 0)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RuleFromDocument(tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			back, err := RuleFromDocument(got.Document())
			require.NoError(t, err)
			assert.Equal(t, got, back)
		})
	}
}

func TestRuleFromDocument_Invalid(t *testing.T) {
	anchor := date(2024, 1, 1, 9, 0)
	until := date(2024, 6, 30, 0, 0)

	tests := []struct {
		name string
		doc  model.RuleDocument
	}{
		{"unknown frequency", model.RuleDocument{Freq: "DAILY", DTStart: anchor}},
		{"weekly without days", model.RuleDocument{Freq: "WEEKLY", DTStart: anchor}},
		{"weekly with month day", model.RuleDocument{Freq: "WEEKLY", DTStart: anchor,
			ByWeekday: []model.WeekdaySpec{{Weekday: "MO"}}, ByMonthDay: intPtr(3)}},
		{"weekly with ordinal", model.RuleDocument{Freq: "WEEKLY", DTStart: anchor,
			ByWeekday: []model.WeekdaySpec{{Weekday: "MO", N: 2}}}},
		{"bad weekday", model.RuleDocument{Freq: "WEEKLY", DTStart: anchor,
			ByWeekday: []model.WeekdaySpec{{Weekday: "XX"}}}},
		{"monthly with neither", model.RuleDocument{Freq: "MONTHLY", DTStart: anchor}},
		{"monthly with both", model.RuleDocument{Freq: "MONTHLY", DTStart: anchor,
			ByMonthDay: intPtr(3), ByWeekday: []model.WeekdaySpec{{Weekday: "MO", N: 1}}}},
		{"monthly two weekdays", model.RuleDocument{Freq: "MONTHLY", DTStart: anchor,
			ByWeekday: []model.WeekdaySpec{{Weekday: "MO", N: 1}, {Weekday: "TU", N: 1}}}},
		{"monthly weekday without ordinal", model.RuleDocument{Freq: "MONTHLY", DTStart: anchor,
			ByWeekday: []model.WeekdaySpec{{Weekday: "MO"}}}},
		{"count and until", model.RuleDocument{Freq: "MONTHLY", DTStart: anchor,
			ByMonthDay: intPtr(3), Count: intPtr(2), Until: &until}},
		{"negative count", model.RuleDocument{Freq: "MONTHLY", DTStart: anchor,
			ByMonthDay: intPtr(3), Count: intPtr(-1)}},
		{"missing dtstart", model.RuleDocument{Freq: "MONTHLY", ByMonthDay: intPtr(3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RuleFromDocument(tt.doc)
			assert.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}

func TestSeriesFromRecord(t *testing.T) {
	color := "bg-red-500"
	rec := model.RecurringEvent{
		ID:    "abc",
		Title: "Gym",
		Color: &color,
		RuleStart: model.RuleDocument{
			Freq: "WEEKLY", DTStart: date(2024, 1, 1, 18, 0),
			ByWeekday: []model.WeekdaySpec{{Weekday: "MO"}},
		},
		RuleEnd: model.RuleDocument{
			Freq: "WEEKLY", DTStart: date(2024, 1, 1, 19, 30),
			ByWeekday: []model.WeekdaySpec{{Weekday: "MO"}},
		},
	}

	s, err := SeriesFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, "bg-red-500", s.Color)
	assert.Equal(t, 90*time.Minute, s.Offset())

	rec.RuleEnd.Freq = "MONTHLY"
	rec.RuleEnd.ByWeekday = nil
	rec.RuleEnd.ByMonthDay = intPtr(1)
	_, err = SeriesFromRecord(rec)
	assert.ErrorIs(t, err, ErrInvalidRule)

	rec.RuleEnd = model.RuleDocument{Freq: "MONTHLY"}
	_, err = SeriesFromRecord(rec)
	assert.ErrorContains(t, err, "rruleEnd")
}

func TestWeekdayCode(t *testing.T) {
	assert.Equal(t, "MO", WeekdayCode(time.Monday))
	assert.Equal(t, "SU", WeekdayCode(time.Sunday))
	assert.Equal(t, "TH", WeekdayCode(time.Thursday))
}
