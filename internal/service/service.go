// Package service implements the planner's use cases on top of a db.Store:
// it converts stored documents into calendar rules, keeps the window cache
// coherent and announces every change.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/planner/internal/calendar"
	"github.com/Nixie-Tech-LLC/planner/internal/db"
	"github.com/Nixie-Tech-LLC/planner/internal/ics"
	"github.com/Nixie-Tech-LLC/planner/internal/model"
	"github.com/Nixie-Tech-LLC/planner/internal/notify"
)

// ErrInvalidInput reports a request the service refuses before touching the
// store, such as an empty title or an event that ends before it starts.
var ErrInvalidInput = errors.New("invalid input")

// DefaultGroups are the groups a fresh installation starts with.
var DefaultGroups = []model.Group{
	{Name: "Personal", Color: "bg-blue-500"},
	{Name: "Work", Color: "bg-red-500"},
	{Name: "Study", Color: "bg-green-500"},
}

type CalendarService struct {
	store    db.Store
	cache    WindowCache
	notifier notify.Notifier
	now      func() time.Time
}

type Option func(*CalendarService)

func WithCache(c WindowCache) Option {
	return func(s *CalendarService) { s.cache = c }
}

func WithNotifier(n notify.Notifier) Option {
	return func(s *CalendarService) { s.notifier = n }
}

// WithClock replaces time.Now. Only defaults and timestamps read it.
func WithClock(now func() time.Time) Option {
	return func(s *CalendarService) { s.now = now }
}

func NewCalendarService(store db.Store, opts ...Option) *CalendarService {
	s := &CalendarService{
		store:    store,
		cache:    nopCache{},
		notifier: notify.Nop{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// changed drops cached windows when occurrences may differ and announces the
// change.
func (s *CalendarService) changed(ctx context.Context, kind, resource, id string) {
	if resource != notify.ResourceGroup {
		s.cache.Invalidate(ctx)
	}
	s.notifier.Notify(ctx, notify.Change{Kind: kind, Resource: resource, ID: id, At: s.now().UTC()})
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// --- single events ---

func (s *CalendarService) CreateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	ev.Title = strings.TrimSpace(ev.Title)
	if ev.Title == "" {
		return model.Event{}, invalid("title is required")
	}
	if !ev.End.After(ev.Start) {
		return model.Event{}, invalid("end must be after start")
	}

	created, err := s.store.CreateEvent(ctx, ev)
	if err != nil {
		return model.Event{}, err
	}
	s.changed(ctx, notify.KindCreated, notify.ResourceEvent, created.ID)
	return created, nil
}

func (s *CalendarService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.store.ListEvents(ctx)
}

func (s *CalendarService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, notify.KindDeleted, notify.ResourceEvent, id)
	return nil
}

// --- recurring events ---

// CreateRecurringEvent checks that both rule documents describe one valid
// series before anything is stored.
func (s *CalendarService) CreateRecurringEvent(ctx context.Context, rec model.RecurringEvent) (model.RecurringEvent, error) {
	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Title == "" {
		return model.RecurringEvent{}, invalid("title is required")
	}
	if _, err := calendar.SeriesFromRecord(rec); err != nil {
		return model.RecurringEvent{}, err
	}

	created, err := s.store.CreateRecurringEvent(ctx, rec)
	if err != nil {
		return model.RecurringEvent{}, err
	}
	s.changed(ctx, notify.KindCreated, notify.ResourceRecurringEvent, created.ID)
	return created, nil
}

func (s *CalendarService) ListRecurringEvents(ctx context.Context) ([]model.RecurringEvent, error) {
	return s.store.ListRecurringEvents(ctx)
}

func (s *CalendarService) DeleteRecurringEvent(ctx context.Context, id string) error {
	if err := s.store.DeleteRecurringEvent(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, notify.KindDeleted, notify.ResourceRecurringEvent, id)
	return nil
}

// ExcludeInstance removes one occurrence from series id. The exclusion is
// computed inside the store's read-modify-write so concurrent exclusions on
// the same series are all kept. Only the exdate lists of the stored
// documents change.
func (s *CalendarService) ExcludeInstance(ctx context.Context, id string, occurrenceStart time.Time) (model.RecurringEvent, error) {
	updated, err := s.store.ModifyRecurringEvent(ctx, id, func(rec *model.RecurringEvent) error {
		series, err := calendar.SeriesFromRecord(*rec)
		if err != nil {
			return err
		}
		next, err := calendar.ExcludeInstance(series, occurrenceStart)
		if err != nil {
			return err
		}
		rec.RuleStart.ExDate = next.Start.Exclusions
		rec.RuleEnd.ExDate = next.End.Exclusions
		return nil
	})
	if err != nil {
		return model.RecurringEvent{}, err
	}
	s.changed(ctx, notify.KindUpdated, notify.ResourceRecurringEvent, id)
	return updated, nil
}

// --- calendar window ---

// WeekOf returns the Monday and Sunday of the week containing t, at midnight
// in t's location.
func WeekOf(t time.Time) (time.Time, time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	sinceMonday := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -sinceMonday)
	return monday, monday.AddDate(0, 0, 6)
}

// Window returns every occurrence whose day lies in [from, to]. A zero from
// means the Monday of the current week; a zero to means six days after from.
// Stored series that no longer validate are logged and left out.
func (s *CalendarService) Window(ctx context.Context, from, to time.Time) ([]calendar.Occurrence, error) {
	if from.IsZero() {
		from, _ = WeekOf(s.now())
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, 6)
	}

	version := s.cache.Version(ctx)
	if cached, ok := s.cache.Get(ctx, version, from, to).Get(); ok {
		return cached, nil
	}

	events, series, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	out, err := calendar.MergeWindow(events, series, from, to)
	if err != nil {
		log.Error().Err(err).Msg("some recurring events could not be expanded")
	}

	s.cache.Set(ctx, version, from, to, out)
	return out, nil
}

// load reads everything the window and the export are built from.
func (s *CalendarService) load(ctx context.Context) ([]calendar.SingleEvent, []calendar.Series, error) {
	records, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, nil, err
	}
	recurring, err := s.store.ListRecurringEvents(ctx)
	if err != nil {
		return nil, nil, err
	}

	events := make([]calendar.SingleEvent, 0, len(records))
	for _, rec := range records {
		events = append(events, calendar.EventFromRecord(rec))
	}

	series := make([]calendar.Series, 0, len(recurring))
	for _, rec := range recurring {
		sr, err := calendar.SeriesFromRecord(rec)
		if err != nil {
			log.Error().Err(err).Str("recurring_event_id", rec.ID).Msg("skipping invalid recurring event")
			continue
		}
		series = append(series, sr)
	}
	return events, series, nil
}

// ExportICS renders the whole calendar as an iCalendar document.
func (s *CalendarService) ExportICS(ctx context.Context) (string, error) {
	events, series, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return ics.Export(events, series, s.now().UTC()), nil
}

// --- groups ---

func (s *CalendarService) ListGroups(ctx context.Context) ([]model.Group, error) {
	return s.store.ListGroups(ctx)
}

func (s *CalendarService) CreateGroup(ctx context.Context, g model.Group) (model.Group, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" || g.Color == "" {
		return model.Group{}, invalid("name and color are required")
	}

	created, err := s.store.CreateGroup(ctx, g)
	if err != nil {
		return model.Group{}, err
	}
	s.changed(ctx, notify.KindCreated, notify.ResourceGroup, created.ID)
	return created, nil
}

func (s *CalendarService) UpdateGroup(ctx context.Context, id string, patch db.GroupPatch) (model.Group, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return model.Group{}, invalid("name must not be empty")
		}
		patch.Name = &name
	}
	if patch.Color != nil && *patch.Color == "" {
		return model.Group{}, invalid("color must not be empty")
	}

	updated, err := s.store.UpdateGroup(ctx, id, patch)
	if err != nil {
		return model.Group{}, err
	}
	s.changed(ctx, notify.KindUpdated, notify.ResourceGroup, id)
	return updated, nil
}

func (s *CalendarService) DeleteGroup(ctx context.Context, id string) error {
	if err := s.store.DeleteGroup(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, notify.KindDeleted, notify.ResourceGroup, id)
	return nil
}

// ResetGroups replaces every group with groups, or with DefaultGroups when
// groups is empty.
func (s *CalendarService) ResetGroups(ctx context.Context, groups []model.Group) ([]model.Group, error) {
	if len(groups) == 0 {
		groups = DefaultGroups
	}
	for _, g := range groups {
		if strings.TrimSpace(g.Name) == "" || g.Color == "" {
			return nil, invalid("every group needs a name and a color")
		}
	}

	out, err := s.store.ReplaceGroups(ctx, groups)
	if err != nil {
		return nil, err
	}
	s.changed(ctx, notify.KindUpdated, notify.ResourceGroup, "")
	return out, nil
}
