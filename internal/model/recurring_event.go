package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RecurringEvent is a persisted series. The two rule documents describe the
// start instants and the end instants of the same cadence.
type RecurringEvent struct {
	ID        string       `db:"id"          json:"id"`
	Title     string       `db:"title"       json:"title"`
	Color     *string      `db:"color"       json:"color,omitempty"`
	GroupID   *string      `db:"group_id"    json:"group_id,omitempty"`
	RuleStart RuleDocument `db:"rrule_start" json:"rruleStart"`
	RuleEnd   RuleDocument `db:"rrule_end"   json:"rruleEnd"`
	CreatedAt time.Time    `db:"created_at"  json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"  json:"updated_at"`
}

// RuleDocument is the stored and wire shape of a recurrence rule: a loose bag
// of rrule options. It is converted to a typed calendar.Rule before any
// expansion happens.
//
// Decoding accepts two spellings. The canonical one names the frequency
// ("weekly", "monthly") and weekdays ("MO".."SU"). The rrule.js Options form
// the UI submits uses numbers instead: freq 1 is monthly and 2 is weekly, and
// weekday 0 is Monday through 6 for Sunday. Documents are always encoded in
// the canonical spelling.
type RuleDocument struct {
	Freq       string        `json:"freq"`
	DTStart    time.Time     `json:"dtstart"`
	ByWeekday  []WeekdaySpec `json:"byweekday,omitempty"`
	ByMonthDay *int          `json:"bymonthday,omitempty"`
	Count      *int          `json:"count,omitempty"`
	Until      *time.Time    `json:"until,omitempty"`
	ExDate     []time.Time   `json:"exdate,omitempty"`
}

// WeekdaySpec is a two-letter weekday ("MO".."SU") with an optional ordinal
// (1..5, or -1..-5 counting from the end of the month).
type WeekdaySpec struct {
	Weekday string `json:"weekday"`
	N       int    `json:"n,omitempty"`
}

// rrule.js Frequency enum, in order.
var rruleFrequencies = []string{"yearly", "monthly", "weekly", "daily", "hourly", "minutely", "secondly"}

// rrule.js weekday numbering starts at Monday.
var rruleWeekdays = []string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

func (d *RuleDocument) UnmarshalJSON(b []byte) error {
	type plain RuleDocument
	var aux struct {
		plain
		Freq       json.RawMessage `json:"freq"`
		ByMonthDay json.RawMessage `json:"bymonthday"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	freq, err := decodeFreq(aux.Freq)
	if err != nil {
		return err
	}
	monthDay, err := decodeMonthDay(aux.ByMonthDay)
	if err != nil {
		return err
	}

	*d = RuleDocument(aux.plain)
	d.Freq = freq
	d.ByMonthDay = monthDay
	return nil
}

func decodeFreq(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("rule document: freq must be a name or an rrule frequency number, got %s", raw)
	}
	if n < 0 || n >= len(rruleFrequencies) {
		return "", fmt.Errorf("rule document: unknown frequency %d", n)
	}
	return rruleFrequencies[n], nil
}

// decodeMonthDay takes a number or, as rrule.js allows, a list holding one.
func decodeMonthDay(raw json.RawMessage) (*int, error) {
	if isNull(raw) {
		return nil, nil
	}
	var day int
	if err := json.Unmarshal(raw, &day); err == nil {
		return &day, nil
	}
	var days []int
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, fmt.Errorf("rule document: bymonthday must be a number, got %s", raw)
	}
	switch len(days) {
	case 0:
		return nil, nil
	case 1:
		return &days[0], nil
	}
	return nil, fmt.Errorf("rule document: only one day of month is supported, got %d", len(days))
}

// UnmarshalJSON accepts "MO", 0, {"weekday":"MO","n":2} and {"weekday":0,"n":2}.
func (w *WeekdaySpec) UnmarshalJSON(b []byte) error {
	var aux struct {
		Weekday json.RawMessage `json:"weekday"`
		N       *int            `json:"n"`
	}
	if len(b) > 0 && b[0] == '{' {
		if err := json.Unmarshal(b, &aux); err != nil {
			return err
		}
	} else {
		aux.Weekday = b
	}

	code, err := decodeWeekday(aux.Weekday)
	if err != nil {
		return err
	}
	*w = WeekdaySpec{Weekday: code}
	if aux.N != nil {
		w.N = *aux.N
	}
	return nil
}

func decodeWeekday(raw json.RawMessage) (string, error) {
	var code string
	if err := json.Unmarshal(raw, &code); err == nil {
		return code, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("rule document: weekday must be a code or a number, got %s", raw)
	}
	if n < 0 || n >= len(rruleWeekdays) {
		return "", fmt.Errorf("rule document: weekday %d out of range 0..6", n)
	}
	return rruleWeekdays[n], nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// Value stores the document as JSONB. It is sent as text: lib/pq would
// encode a []byte as bytea.
func (d RuleDocument) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads a JSONB column.
func (d *RuleDocument) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*d = RuleDocument{}
		return nil
	default:
		return fmt.Errorf("rule document: unsupported column type %T", src)
	}
	return json.Unmarshal(raw, d)
}
