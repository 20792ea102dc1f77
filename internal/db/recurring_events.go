package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/planner/internal/model"
)

const recurringColumns = `id, title, color, group_id, rrule_start, rrule_end, created_at, updated_at`

func (s *pgStore) CreateRecurringEvent(ctx context.Context, rec model.RecurringEvent) (model.RecurringEvent, error) {
	var out model.RecurringEvent
	q := `
	INSERT INTO recurring_events (id, title, color, group_id, rrule_start, rrule_end, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	RETURNING ` + recurringColumns + `;`
	err := s.db.GetContext(ctx, &out, q,
		uuid.NewString(), rec.Title, rec.Color, rec.GroupID, rec.RuleStart, rec.RuleEnd)
	if err != nil {
		log.Error().Err(err).Msg("CreateRecurringEvent failed")
		return model.RecurringEvent{}, err
	}
	return out, nil
}

func (s *pgStore) GetRecurringEvent(ctx context.Context, id string) (model.RecurringEvent, error) {
	var out model.RecurringEvent
	q := `SELECT ` + recurringColumns + ` FROM recurring_events WHERE id = $1;`
	if err := s.db.GetContext(ctx, &out, q, id); err != nil {
		return model.RecurringEvent{}, notFound(err)
	}
	return out, nil
}

func (s *pgStore) ListRecurringEvents(ctx context.Context) ([]model.RecurringEvent, error) {
	out := []model.RecurringEvent{}
	q := `SELECT ` + recurringColumns + ` FROM recurring_events ORDER BY created_at, id;`
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		log.Error().Err(err).Msg("ListRecurringEvents failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) DeleteRecurringEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recurring_events WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Str("recurring_event_id", id).Msg("DeleteRecurringEvent failed")
		return err
	}
	return expectOne(res)
}

// ModifyRecurringEvent locks the row for the duration of fn so two concurrent
// exclusions on the same series cannot overwrite each other. Only the rule
// columns are written back.
func (s *pgStore) ModifyRecurringEvent(ctx context.Context, id string, fn func(*model.RecurringEvent) error) (model.RecurringEvent, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.RecurringEvent{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var rec model.RecurringEvent
	q := `SELECT ` + recurringColumns + ` FROM recurring_events WHERE id = $1 FOR UPDATE;`
	if err := tx.GetContext(ctx, &rec, q, id); err != nil {
		return model.RecurringEvent{}, notFound(err)
	}

	if err := fn(&rec); err != nil {
		return model.RecurringEvent{}, err
	}

	var out model.RecurringEvent
	err = tx.GetContext(ctx, &out, `
	UPDATE recurring_events
	   SET rrule_start = $1,
	       rrule_end   = $2,
	       updated_at  = now()
	 WHERE id = $3
	RETURNING `+recurringColumns+`;`, rec.RuleStart, rec.RuleEnd, id)
	if err != nil {
		log.Error().Err(err).Str("recurring_event_id", id).Msg("ModifyRecurringEvent update failed")
		return model.RecurringEvent{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.RecurringEvent{}, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}
