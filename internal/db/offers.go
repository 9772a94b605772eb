package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/offer-composer/internal/types"
)

const snapshotColumns = `id, offer_id, employee_id, rate_card_level, experience, selected_experience,
	project_ids, project_activity_ids, planned_weekly_hours, discount, last_changed`

func scanSnapshot(row pgx.Row) (*types.ShownEmployeeProperties, error) {
	var s types.ShownEmployeeProperties
	var experience, selected, projectIDs, activityIDs []byte
	err := row.Scan(&s.ID, &s.OfferID, &s.EmployeeID, &s.RateCardLevel, &experience, &selected,
		&projectIDs, &activityIDs, &s.PlannedWeeklyHours, &s.Discount, &s.LastChanged)
	if err != nil {
		return nil, err
	}
	for _, col := range []struct {
		src []byte
		out any
	}{
		{experience, &s.Experience},
		{selected, &s.SelectedExperience},
		{projectIDs, &s.ProjectIDs},
		{activityIDs, &s.ProjectActivityIDs},
	} {
		if err := fromJSON(col.src, col.out); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot %s: %w", s.ID, err)
		}
	}
	return &s, nil
}

// GetOffer retrieves an offer with its snapshots in display order
func (db *DB) GetOffer(ctx context.Context, id uuid.UUID) (*types.Offer, error) {
	var o types.Offer
	var experience, configurationIDs []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, start_date, end_date, experience, document_configuration_ids
		 FROM offers WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.Title, &o.Start, &o.End, &experience, &configurationIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	if err := fromJSON(experience, &o.Experience); err != nil {
		return nil, fmt.Errorf("failed to decode experience of offer %s: %w", o.ID, err)
	}
	if err := fromJSON(configurationIDs, &o.DocumentConfigurationIDs); err != nil {
		return nil, fmt.Errorf("failed to decode configuration ids of offer %s: %w", o.ID, err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+snapshotColumns+` FROM shown_employee_properties
		 WHERE offer_id = $1 ORDER BY ordinal`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		o.ShortEmployees = append(o.ShortEmployees, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return &o, nil
}

// ListOffers retrieves offer headers (without snapshots), newest first
func (db *DB) ListOffers(ctx context.Context, limit int) ([]types.Offer, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, start_date, end_date FROM offers ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	var offers []types.Offer
	for rows.Next() {
		var o types.Offer
		if err := rows.Scan(&o.ID, &o.Title, &o.Start, &o.End); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// SaveOffer inserts or updates an offer and replaces its snapshots. Snapshots no longer on the
// offer are deleted.
func (db *DB) SaveOffer(ctx context.Context, o *types.Offer) error {
	if err := o.Validate(); err != nil {
		return err
	}
	experience, err := toJSON(o.Experience)
	if err != nil {
		return fmt.Errorf("failed to encode offer experience: %w", err)
	}
	configurationIDs, err := toJSON(o.DocumentConfigurationIDs)
	if err != nil {
		return fmt.Errorf("failed to encode configuration ids: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	_, err = tx.Exec(ctx,
		`INSERT INTO offers (id, title, start_date, end_date, experience, document_configuration_ids)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		     title = $2,
		     start_date = $3,
		     end_date = $4,
		     experience = $5,
		     document_configuration_ids = $6,
		     updated_at = NOW()`,
		o.ID, o.Title, o.Start, o.End, experience, configurationIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}

	// Delete existing snapshots for upsert
	if _, err := tx.Exec(ctx, `DELETE FROM shown_employee_properties WHERE offer_id = $1`, o.ID); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	for i, s := range o.ShortEmployees {
		if err := insertSnapshot(ctx, tx, s, i+1); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertSnapshot(ctx context.Context, tx pgx.Tx, s *types.ShownEmployeeProperties, ordinal int) error {
	args, err := snapshotArgs(s)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO shown_employee_properties (`+snapshotColumns+`, ordinal)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		append(args, ordinal)...,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", s.ID, err)
	}
	return nil
}

func snapshotArgs(s *types.ShownEmployeeProperties) ([]any, error) {
	experience, err := toJSON(s.Experience)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot experience: %w", err)
	}
	selected, err := toJSON(s.SelectedExperience)
	if err != nil {
		return nil, fmt.Errorf("failed to encode selected experience: %w", err)
	}
	projectIDs, err := toJSON(s.ProjectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode project ids: %w", err)
	}
	activityIDs, err := toJSON(s.ProjectActivityIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode activity ids: %w", err)
	}
	return []any{
		s.ID, s.OfferID, s.EmployeeID, s.RateCardLevel, experience, selected,
		projectIDs, activityIDs, s.PlannedWeeklyHours, s.Discount, s.LastChanged,
	}, nil
}

// GetShownEmployeeProperties retrieves a single snapshot
func (db *DB) GetShownEmployeeProperties(ctx context.Context, id uuid.UUID) (*types.ShownEmployeeProperties, error) {
	s, err := scanSnapshot(db.pool.QueryRow(ctx,
		`SELECT `+snapshotColumns+` FROM shown_employee_properties WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return s, nil
}

// UpdateShownEmployeeProperties writes the editable state of an existing snapshot. The owning
// offer and employee never change.
func (db *DB) UpdateShownEmployeeProperties(ctx context.Context, s *types.ShownEmployeeProperties) error {
	args, err := snapshotArgs(s)
	if err != nil {
		return err
	}
	result, err := db.pool.Exec(ctx,
		`UPDATE shown_employee_properties SET
		     rate_card_level = $4,
		     experience = $5,
		     selected_experience = $6,
		     project_ids = $7,
		     project_activity_ids = $8,
		     planned_weekly_hours = $9,
		     discount = $10,
		     last_changed = $11
		 WHERE id = $1 AND offer_id = $2 AND employee_id = $3`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("snapshot not found: %s", s.ID)
	}
	return nil
}
