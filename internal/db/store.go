// exposes a Store interface that the service layer is built on
package db

import (
	"context"
	"errors"

	"github.com/Nixie-Tech-LLC/planner/internal/model"
)

// ErrNotFound is returned when a record with the requested ID does not exist.
var ErrNotFound = errors.New("record not found")

// GroupPatch holds the fields of a group to change; nil fields are kept.
type GroupPatch struct {
	Name  *string
	Color *string
}

type Store interface {
	// single events
	CreateEvent(ctx context.Context, ev model.Event) (model.Event, error)
	GetEvent(ctx context.Context, id string) (model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	// recurring events
	CreateRecurringEvent(ctx context.Context, rec model.RecurringEvent) (model.RecurringEvent, error)
	GetRecurringEvent(ctx context.Context, id string) (model.RecurringEvent, error)
	ListRecurringEvents(ctx context.Context) ([]model.RecurringEvent, error)
	DeleteRecurringEvent(ctx context.Context, id string) error
	// ModifyRecurringEvent re-reads the record, lets fn change its rule
	// documents and writes only those back, serialized against other
	// modifications of the same record. If fn fails nothing is written.
	ModifyRecurringEvent(ctx context.Context, id string, fn func(*model.RecurringEvent) error) (model.RecurringEvent, error)

	// groups
	ListGroups(ctx context.Context) ([]model.Group, error)
	CreateGroup(ctx context.Context, g model.Group) (model.Group, error)
	UpdateGroup(ctx context.Context, id string, patch GroupPatch) (model.Group, error)
	DeleteGroup(ctx context.Context, id string) error
	// ReplaceGroups deletes every group and inserts groups in their place.
	ReplaceGroups(ctx context.Context, groups []model.Group) ([]model.Group, error)
}
