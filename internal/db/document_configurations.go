package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/offer-composer/internal/types"
)

const configurationColumns = `id, offer_id, title, created_at, show_cover_sheet,
	show_required_experience, include_price_calculation, shown_employee_property_ids`

func scanConfiguration(row pgx.Row) (*types.DocumentConfiguration, error) {
	var c types.DocumentConfiguration
	var ids []byte
	err := row.Scan(&c.ID, &c.OfferID, &c.Title, &c.CreatedAt, &c.ShowCoverSheet,
		&c.ShowRequiredExperience, &c.IncludePriceCalculation, &ids)
	if err != nil {
		return nil, err
	}
	if err := fromJSON(ids, &c.ShownEmployeePropertyIDs); err != nil {
		return nil, fmt.Errorf("failed to decode configuration %s: %w", c.ID, err)
	}
	return &c, nil
}

// GetDocumentConfiguration retrieves a document configuration by ID
func (db *DB) GetDocumentConfiguration(ctx context.Context, id uuid.UUID) (*types.DocumentConfiguration, error) {
	c, err := scanConfiguration(db.pool.QueryRow(ctx,
		`SELECT `+configurationColumns+` FROM document_configurations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document configuration: %w", err)
	}
	return c, nil
}

// ListDocumentConfigurations retrieves the configurations of an offer, newest first
func (db *DB) ListDocumentConfigurations(ctx context.Context, offerID uuid.UUID) ([]types.DocumentConfiguration, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+configurationColumns+` FROM document_configurations
		 WHERE offer_id = $1 ORDER BY created_at DESC`,
		offerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list document configurations: %w", err)
	}
	defer rows.Close()

	var configs []types.DocumentConfiguration
	for rows.Next() {
		c, err := scanConfiguration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document configuration: %w", err)
		}
		configs = append(configs, *c)
	}
	return configs, rows.Err()
}

// SaveDocumentConfiguration inserts a configuration and registers it on its offer in one
// transaction
func (db *DB) SaveDocumentConfiguration(ctx context.Context, c *types.DocumentConfiguration) error {
	ids, err := toJSON(c.ShownEmployeePropertyIDs)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot ids: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	_, err = tx.Exec(ctx,
		`INSERT INTO document_configurations (`+configurationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		     title = $3,
		     show_cover_sheet = $5,
		     show_required_experience = $6,
		     include_price_calculation = $7,
		     shown_employee_property_ids = $8`,
		c.ID, c.OfferID, c.Title, c.CreatedAt, c.ShowCoverSheet,
		c.ShowRequiredExperience, c.IncludePriceCalculation, ids,
	)
	if err != nil {
		return fmt.Errorf("failed to save document configuration: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE offers
		 SET document_configuration_ids = document_configuration_ids || to_jsonb($2::text)
		 WHERE id = $1 AND NOT document_configuration_ids @> jsonb_build_array($2::text)`,
		c.OfferID, c.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to register document configuration on offer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteDocumentConfiguration deletes a configuration. The offer keeps no dangling id.
func (db *DB) DeleteDocumentConfiguration(ctx context.Context, id uuid.UUID) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	var offerID uuid.UUID
	err = tx.QueryRow(ctx, `DELETE FROM document_configurations WHERE id = $1 RETURNING offer_id`, id).Scan(&offerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("document configuration not found: %s", id)
		}
		return fmt.Errorf("failed to delete document configuration: %w", err)
	}
	_, err = tx.Exec(ctx,
		`UPDATE offers SET document_configuration_ids = document_configuration_ids - $2::text WHERE id = $1`,
		offerID, id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to unregister document configuration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
