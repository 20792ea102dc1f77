package model

import "time"

// Event is a single, non-recurring calendar entry.
type Event struct {
	ID        string    `db:"id"         json:"id"`
	Title     string    `db:"title"      json:"title"`
	Start     time.Time `db:"start_at"   json:"start"`
	End       time.Time `db:"end_at"     json:"end"`
	Color     *string   `db:"color"      json:"color,omitempty"`
	GroupID   *string   `db:"group_id"   json:"group_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
