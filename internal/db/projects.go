package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/offer-composer/internal/types"
)

// GetProject retrieves a project with its activities
func (db *DB) GetProject(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	var p types.Project
	var field, activities []byte
	var description *string
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, field, start_date, end_date, description, activities
		 FROM projects WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Title, &field, &p.Start, &p.End, &description, &activities)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	p.Description = derefString(description)
	if len(field) > 0 && string(field) != "null" {
		var f types.Experience
		if err := fromJSON(field, &f); err != nil {
			return nil, fmt.Errorf("failed to decode field of project %s: %w", p.ID, err)
		}
		p.Field = &f
	}
	if err := fromJSON(activities, &p.Activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities of project %s: %w", p.ID, err)
	}
	return &p, nil
}

// SaveProject inserts or updates a project
func (db *DB) SaveProject(ctx context.Context, p *types.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	var field []byte
	if p.Field != nil {
		var err error
		if field, err = toJSON(p.Field); err != nil {
			return fmt.Errorf("failed to encode project field: %w", err)
		}
	}
	activities, err := toJSON(p.Activities)
	if err != nil {
		return fmt.Errorf("failed to encode activities: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO projects (id, title, field, start_date, end_date, description, activities)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		     title = $2,
		     field = $3,
		     start_date = $4,
		     end_date = $5,
		     description = $6,
		     activities = $7,
		     updated_at = NOW()`,
		p.ID, p.Title, field, p.Start, p.End, nullIfEmpty(p.Description), activities,
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}
