package packets

import (
	"encoding/json"
	"time"

	"github.com/Nixie-Tech-LLC/planner/internal/model"
)

type CreateEventRequest struct {
	Title   string    `json:"title"    binding:"required"`
	Start   time.Time `json:"start"    binding:"required"`
	End     time.Time `json:"end"      binding:"required"`
	Color   *string   `json:"color"`
	GroupID *string   `json:"group_id"`
}

// CreateRecurringEventRequest carries the two rule documents as the UI
// builds them: one for start instants and one for end instants.
type CreateRecurringEventRequest struct {
	Title      string              `json:"title"      binding:"required"`
	Color      *string             `json:"color"`
	GroupID    *string             `json:"group_id"`
	RRuleStart *model.RuleDocument `json:"rruleStart" binding:"required"`
	RRuleEnd   *model.RuleDocument `json:"rruleEnd"   binding:"required"`
}

// ExcludeInstanceRequest names the start of the occurrence to drop.
type ExcludeInstanceRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

// CalendarQuery is the visible range. Either bound may be omitted.
type CalendarQuery struct {
	From time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   time.Time `form:"to"   time_format:"2006-01-02" time_utc:"1"`
}

type CreateGroupRequest struct {
	Name  string `json:"name"  binding:"required"`
	Color string `json:"color" binding:"required"`
}

type UpdateGroupRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type ChatRequest struct {
	Message string            `json:"message" binding:"required"`
	History []json.RawMessage `json:"history" binding:"required"`
	Mode    string            `json:"mode"`
}
