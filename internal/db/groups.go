package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/planner/internal/model"
)

const groupColumns = `id, name, color, created_at, updated_at`

func (s *pgStore) ListGroups(ctx context.Context) ([]model.Group, error) {
	out := []model.Group{}
	q := `SELECT ` + groupColumns + ` FROM groups ORDER BY created_at, name, id;`
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		log.Error().Err(err).Msg("ListGroups failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) CreateGroup(ctx context.Context, g model.Group) (model.Group, error) {
	var out model.Group
	q := `
	INSERT INTO groups (id, name, color, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING ` + groupColumns + `;`
	if err := s.db.GetContext(ctx, &out, q, uuid.NewString(), g.Name, g.Color); err != nil {
		log.Error().Err(err).Msg("CreateGroup failed")
		return model.Group{}, err
	}
	return out, nil
}

func (s *pgStore) UpdateGroup(ctx context.Context, id string, patch GroupPatch) (model.Group, error) {
	var out model.Group
	q := `
	UPDATE groups
	   SET name       = COALESCE($1, name),
	       color      = COALESCE($2, color),
	       updated_at = now()
	 WHERE id = $3
	RETURNING ` + groupColumns + `;`
	if err := s.db.GetContext(ctx, &out, q, patch.Name, patch.Color, id); err != nil {
		return model.Group{}, notFound(err)
	}
	return out, nil
}

func (s *pgStore) DeleteGroup(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Str("group_id", id).Msg("DeleteGroup failed")
		return err
	}
	return expectOne(res)
}

func (s *pgStore) ReplaceGroups(ctx context.Context, groups []model.Group) ([]model.Group, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM groups;`); err != nil {
		return nil, fmt.Errorf("clear groups: %w", err)
	}

	out := make([]model.Group, 0, len(groups))
	for _, g := range groups {
		var created model.Group
		err := tx.GetContext(ctx, &created, `
		INSERT INTO groups (id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING `+groupColumns+`;`, uuid.NewString(), g.Name, g.Color)
		if err != nil {
			return nil, fmt.Errorf("insert group %q: %w", g.Name, err)
		}
		out = append(out, created)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}
