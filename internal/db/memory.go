package db

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nixie-Tech-LLC/planner/internal/model"
)

// memoryStore keeps everything in process. It backs local development and
// the handler tests. Records are copied on the way in and out so callers
// never share slices with the store.
type memoryStore struct {
	mu        sync.Mutex
	now       func() time.Time
	events    []model.Event
	recurring []model.RecurringEvent
	groups    []model.Group
}

var _ Store = (*memoryStore)(nil)

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{now: time.Now}
}

func (m *memoryStore) CreateEvent(_ context.Context, ev model.Event) (model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	ev.ID = uuid.NewString()
	ev.CreatedAt, ev.UpdatedAt = now, now
	m.events = append(m.events, cloneEvent(ev))
	return cloneEvent(ev), nil
}

func (m *memoryStore) GetEvent(_ context.Context, id string) (model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.events, func(e model.Event) bool { return e.ID == id })
	if i < 0 {
		return model.Event{}, ErrNotFound
	}
	return cloneEvent(m.events[i]), nil
}

func (m *memoryStore) ListEvents(_ context.Context) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, cloneEvent(e))
	}
	return out, nil
}

func (m *memoryStore) DeleteEvent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.events, func(e model.Event) bool { return e.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.events = slices.Delete(m.events, i, i+1)
	return nil
}

func (m *memoryStore) CreateRecurringEvent(_ context.Context, rec model.RecurringEvent) (model.RecurringEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	rec.ID = uuid.NewString()
	rec.CreatedAt, rec.UpdatedAt = now, now
	m.recurring = append(m.recurring, cloneRecurring(rec))
	return cloneRecurring(rec), nil
}

func (m *memoryStore) GetRecurringEvent(_ context.Context, id string) (model.RecurringEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.recurringIndex(id)
	if i < 0 {
		return model.RecurringEvent{}, ErrNotFound
	}
	return cloneRecurring(m.recurring[i]), nil
}

func (m *memoryStore) ListRecurringEvents(_ context.Context) ([]model.RecurringEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.RecurringEvent, 0, len(m.recurring))
	for _, r := range m.recurring {
		out = append(out, cloneRecurring(r))
	}
	return out, nil
}

func (m *memoryStore) DeleteRecurringEvent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.recurringIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	m.recurring = slices.Delete(m.recurring, i, i+1)
	return nil
}

func (m *memoryStore) ModifyRecurringEvent(_ context.Context, id string, fn func(*model.RecurringEvent) error) (model.RecurringEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.recurringIndex(id)
	if i < 0 {
		return model.RecurringEvent{}, ErrNotFound
	}

	work := cloneRecurring(m.recurring[i])
	if err := fn(&work); err != nil {
		return model.RecurringEvent{}, err
	}

	stored := &m.recurring[i]
	stored.RuleStart = cloneRule(work.RuleStart)
	stored.RuleEnd = cloneRule(work.RuleEnd)
	stored.UpdatedAt = m.now().UTC()
	return cloneRecurring(*stored), nil
}

func (m *memoryStore) recurringIndex(id string) int {
	return slices.IndexFunc(m.recurring, func(r model.RecurringEvent) bool { return r.ID == id })
}

func (m *memoryStore) ListGroups(_ context.Context) ([]model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.groups), nil
}

func (m *memoryStore) CreateGroup(_ context.Context, g model.Group) (model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.groups = append(m.groups, m.stamp(g))
	return m.groups[len(m.groups)-1], nil
}

func (m *memoryStore) UpdateGroup(_ context.Context, id string, patch GroupPatch) (model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.groups, func(g model.Group) bool { return g.ID == id })
	if i < 0 {
		return model.Group{}, ErrNotFound
	}
	g := &m.groups[i]
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.Color != nil {
		g.Color = *patch.Color
	}
	g.UpdatedAt = m.now().UTC()
	return *g, nil
}

func (m *memoryStore) DeleteGroup(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.groups, func(g model.Group) bool { return g.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.groups = slices.Delete(m.groups, i, i+1)
	m.detachGroup(id)
	return nil
}

func (m *memoryStore) ReplaceGroups(_ context.Context, groups []model.Group) ([]model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, g := range m.groups {
		m.detachGroup(g.ID)
	}
	m.groups = make([]model.Group, 0, len(groups))
	for _, g := range groups {
		m.groups = append(m.groups, m.stamp(g))
	}
	return slices.Clone(m.groups), nil
}

func (m *memoryStore) stamp(g model.Group) model.Group {
	now := m.now().UTC()
	g.ID = uuid.NewString()
	g.CreatedAt, g.UpdatedAt = now, now
	return g
}

// detachGroup mirrors ON DELETE SET NULL on the group_id columns.
func (m *memoryStore) detachGroup(id string) {
	for i := range m.events {
		if m.events[i].GroupID != nil && *m.events[i].GroupID == id {
			m.events[i].GroupID = nil
		}
	}
	for i := range m.recurring {
		if m.recurring[i].GroupID != nil && *m.recurring[i].GroupID == id {
			m.recurring[i].GroupID = nil
		}
	}
}

func cloneEvent(e model.Event) model.Event {
	e.Color = clonePtr(e.Color)
	e.GroupID = clonePtr(e.GroupID)
	return e
}

func cloneRecurring(r model.RecurringEvent) model.RecurringEvent {
	r.Color = clonePtr(r.Color)
	r.GroupID = clonePtr(r.GroupID)
	r.RuleStart = cloneRule(r.RuleStart)
	r.RuleEnd = cloneRule(r.RuleEnd)
	return r
}

func cloneRule(d model.RuleDocument) model.RuleDocument {
	d.ByWeekday = slices.Clone(d.ByWeekday)
	d.ByMonthDay = clonePtr(d.ByMonthDay)
	d.Count = clonePtr(d.Count)
	d.Until = clonePtr(d.Until)
	d.ExDate = slices.Clone(d.ExDate)
	return d
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
