// Package ics renders the calendar as an RFC 5545 document so it can be
// subscribed to from other calendar apps.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/Nixie-Tech-LLC/planner/internal/calendar"
)

const (
	productID = "-//Nixie Tech//Planner//EN"
	calName   = "Planner"

	// the UI stores Tailwind classes, which are not valid RFC 7986 COLOR values
	propertyColor = ical.ComponentProperty("X-PLANNER-COLOR")

	utcLayout   = "20060102T150405Z"
	localLayout = "20060102T150405"
)

// Export renders single events and series into one VCALENDAR. Series are
// written as a master VEVENT with RRULE and EXDATE rather than expanded, so
// the document stays small and open-ended series survive. stamp is used as
// DTSTAMP for every component.
//
// A series anchored outside UTC is written in its anchor's wall-clock time
// with a TZID, because its RRULE names weekdays and days of month as seen in
// that zone.
func Export(events []calendar.SingleEvent, series []calendar.Series, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(calName)

	zones := make([]zone, len(series))
	declared := map[string]bool{}
	for i, s := range series {
		zones[i] = zoneOf(s.Start.Anchor)
		if z := zones[i]; z.fixed && !declared[z.tzid] {
			declared[z.tzid] = true
			addFixedTimezone(cal, z)
		}
	}

	for _, ev := range events {
		vevent := cal.AddEvent(ev.ID)
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(ev.Start)
		vevent.SetEndAt(ev.End)
		vevent.SetSummary(ev.Title)
		if ev.Color != "" {
			vevent.AddProperty(propertyColor, ev.Color)
		}
	}

	for i, s := range series {
		z := zones[i]
		vevent := cal.AddEvent(s.ID)
		vevent.SetDtStampTime(stamp)
		z.set(vevent, ical.ComponentPropertyDtStart, s.Start.Anchor)
		z.set(vevent, ical.ComponentPropertyDtEnd, s.End.Anchor)
		vevent.SetSummary(s.Title)
		vevent.AddProperty(ical.ComponentPropertyRrule, s.Start.RRule())
		for _, ex := range s.Start.Exclusions {
			z.add(vevent, ical.ComponentPropertyExdate, ex)
		}
		if s.Color != "" {
			vevent.AddProperty(propertyColor, s.Color)
		}
	}

	return cal.Serialize()
}

// zone is how a series' times are written. An empty tzid means UTC.
type zone struct {
	tzid   string
	loc    *time.Location
	offset int
	fixed  bool
}

// zoneOf picks the zone for a series anchored at t. A named IANA location is
// referenced by name. Any other non-UTC location is pinned to t's offset and
// declared with its own VTIMEZONE.
func zoneOf(t time.Time) zone {
	loc := t.Location()
	if loc == time.UTC {
		return zone{}
	}
	_, offset := t.Zone()

	if id := loc.String(); id != "" && id != "Local" {
		if named, err := time.LoadLocation(id); err == nil {
			if _, o := t.In(named).Zone(); o == offset {
				return zone{tzid: id, loc: named, offset: offset}
			}
		}
	}
	if offset == 0 {
		return zone{}
	}

	id := fixedTZID(offset)
	return zone{tzid: id, loc: time.FixedZone(id, offset), offset: offset, fixed: true}
}

// fixedTZID names an offset. Whole hours map onto the IANA Etc zones, whose
// signs are inverted (Etc/GMT+5 is five hours behind UTC).
func fixedTZID(offset int) string {
	if offset%3600 == 0 && offset >= -12*3600 && offset <= 14*3600 {
		return fmt.Sprintf("Etc/GMT%+d", -offset/3600)
	}
	return "UTC" + formatOffset(offset)
}

func formatOffset(offset int) string {
	sign := '+'
	if offset < 0 {
		sign, offset = '-', -offset
	}
	return fmt.Sprintf("%c%02d%02d", sign, offset/3600, offset%3600/60)
}

func addFixedTimezone(cal *ical.Calendar, z zone) {
	std := cal.AddTimezone(z.tzid).AddStandard()
	std.AddProperty(ical.ComponentPropertyDtStart, "19700101T000000")
	std.AddProperty(ical.ComponentProperty(ical.PropertyTzoffsetfrom), formatOffset(z.offset))
	std.AddProperty(ical.ComponentProperty(ical.PropertyTzoffsetto), formatOffset(z.offset))
}

func (z zone) format(t time.Time) (string, []ical.PropertyParameter) {
	if z.tzid == "" {
		return t.UTC().Format(utcLayout), nil
	}
	return t.In(z.loc).Format(localLayout), []ical.PropertyParameter{ical.WithTZID(z.tzid)}
}

func (z zone) set(ev *ical.VEvent, prop ical.ComponentProperty, t time.Time) {
	value, params := z.format(t)
	ev.SetProperty(prop, value, params...)
}

func (z zone) add(ev *ical.VEvent, prop ical.ComponentProperty, t time.Time) {
	value, params := z.format(t)
	ev.AddProperty(prop, value, params...)
}
