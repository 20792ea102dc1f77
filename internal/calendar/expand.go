package calendar

import (
	"iter"
	"time"

	"github.com/google/uuid"
)

var occurrenceNamespace = uuid.MustParse("8d7c1f52-5e0b-4c43-a3f6-2b9de07a1c84")

// Occurrence is one concrete instance shown in a calendar window: either an
// expanded instance of a Series or a SingleEvent.
type Occurrence struct {
	ID        string    `json:"id"`
	SeriesID  string    `json:"series_id,omitempty"`
	Title     string    `json:"title"`
	Color     string    `json:"color,omitempty"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Recurring bool      `json:"recurring"`
}

// Expand returns the occurrences of s whose start day falls within
// [windowStart, windowEnd], compared by calendar day. The sequence is lazy and
// can be ranged over any number of times with the same result. A window that
// ends before it starts yields nothing.
//
// Instants before the window are still generated so AfterCount keeps counting
// from the anchor, and an excluded instant still uses up its position.
func Expand(s Series, windowStart, windowEnd time.Time) (iter.Seq[Occurrence], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	from, to := civilDay(windowStart), civilDay(windowEnd)
	offset := s.Offset()

	return func(yield func(Occurrence) bool) {
		if from.After(to) {
			return
		}
		for start := range Occurrences(s.Start) {
			day := civilDay(start)
			if day.After(to) {
				return
			}
			end := start.Add(offset)
			if s.Start.Excludes(start) || s.End.Excludes(end) {
				continue
			}
			if day.Before(from) {
				continue
			}
			if !yield(s.occurrence(start, end)) {
				return
			}
		}
	}, nil
}

func (s Series) occurrence(start, end time.Time) Occurrence {
	return Occurrence{
		ID:        OccurrenceID(s.ID, start),
		SeriesID:  s.ID,
		Title:     s.Title,
		Color:     s.Color,
		Start:     start,
		End:       end,
		Recurring: true,
	}
}

// OccurrenceID derives a stable identity for the instance of series starting
// at start.
func OccurrenceID(seriesID string, start time.Time) string {
	name := seriesID + "@" + start.UTC().Format(time.RFC3339Nano)
	return uuid.NewSHA1(occurrenceNamespace, []byte(name)).String()
}

// civilDay drops the clock and location, keeping only the wall-clock date.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
