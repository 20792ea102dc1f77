// Package notify tells connected clients that calendar data changed so they
// can refetch the range they are showing.
package notify

import (
	"context"
	"time"
)

const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"

	ResourceEvent          = "event"
	ResourceRecurringEvent = "recurring_event"
	ResourceGroup          = "group"
)

// Change describes one mutation.
type Change struct {
	Kind     string    `json:"kind"`
	Resource string    `json:"resource"`
	ID       string    `json:"id,omitempty"`
	At       time.Time `json:"at"`
}

// Notifier delivers changes. Delivery is best effort: failures are logged by
// the implementation and never surface to the caller.
type Notifier interface {
	Notify(ctx context.Context, change Change)
}

// Nop discards every change.
type Nop struct{}

func (Nop) Notify(context.Context, Change) {}
