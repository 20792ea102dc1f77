package model

import "time"

type Group struct {
	ID        string    `db:"id"         json:"id"         yaml:"-"`
	Name      string    `db:"name"       json:"name"       yaml:"name"`
	Color     string    `db:"color"      json:"color"      yaml:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at" yaml:"-"`
}
