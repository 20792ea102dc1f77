package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/planner/internal/model"
)

const eventColumns = `id, title, start_at, end_at, color, group_id, created_at, updated_at`

func (s *pgStore) CreateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	var out model.Event
	q := `
	INSERT INTO events (id, title, start_at, end_at, color, group_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	RETURNING ` + eventColumns + `;`
	if err := s.db.GetContext(ctx, &out, q, uuid.NewString(), ev.Title, ev.Start, ev.End, ev.Color, ev.GroupID); err != nil {
		log.Error().Err(err).Msg("CreateEvent failed")
		return model.Event{}, err
	}
	return out, nil
}

func (s *pgStore) GetEvent(ctx context.Context, id string) (model.Event, error) {
	var out model.Event
	q := `SELECT ` + eventColumns + ` FROM events WHERE id = $1;`
	if err := s.db.GetContext(ctx, &out, q, id); err != nil {
		return model.Event{}, notFound(err)
	}
	return out, nil
}

func (s *pgStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	out := []model.Event{}
	q := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at, id;`
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		log.Error().Err(err).Msg("ListEvents failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("DeleteEvent failed")
		return err
	}
	return expectOne(res)
}
