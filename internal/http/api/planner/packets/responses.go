package packets

import (
	"time"

	"github.com/Nixie-Tech-LLC/planner/internal/model"
)

type EventResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Color     *string   `json:"color,omitempty"`
	GroupID   *string   `json:"group_id,omitempty"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

func NewEventResponse(ev model.Event) EventResponse {
	return EventResponse{
		ID:        ev.ID,
		Title:     ev.Title,
		Start:     ev.Start,
		End:       ev.End,
		Color:     ev.Color,
		GroupID:   ev.GroupID,
		CreatedAt: ev.CreatedAt.Format(time.RFC3339),
		UpdatedAt: ev.UpdatedAt.Format(time.RFC3339),
	}
}

type RecurringEventResponse struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Color      *string            `json:"color,omitempty"`
	GroupID    *string            `json:"group_id,omitempty"`
	RRuleStart model.RuleDocument `json:"rruleStart"`
	RRuleEnd   model.RuleDocument `json:"rruleEnd"`
	CreatedAt  string             `json:"created_at"`
	UpdatedAt  string             `json:"updated_at"`
}

func NewRecurringEventResponse(rec model.RecurringEvent) RecurringEventResponse {
	return RecurringEventResponse{
		ID:         rec.ID,
		Title:      rec.Title,
		Color:      rec.Color,
		GroupID:    rec.GroupID,
		RRuleStart: rec.RuleStart,
		RRuleEnd:   rec.RuleEnd,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  rec.UpdatedAt.Format(time.RFC3339),
	}
}

type GroupResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewGroupResponse(g model.Group) GroupResponse {
	return GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Color:     g.Color,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
		UpdatedAt: g.UpdatedAt.Format(time.RFC3339),
	}
}

type PublishResponse struct {
	URL string `json:"url"`
}

type ChatResponse struct {
	Text string `json:"text"`
}
