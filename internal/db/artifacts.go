package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DocumentArtifact is a stored rendered document
type DocumentArtifact struct {
	ID              uuid.UUID `json:"id"`
	ConfigurationID uuid.UUID `json:"configuration_id"`
	Filename        string    `json:"filename"`
	MimeType        string    `json:"mime_type"`
	Content         []byte    `json:"-"`
	Size            int       `json:"size"`
	CreatedAt       time.Time `json:"created_at"`
}

// SaveArtifact stores rendered bytes for a configuration and returns the artifact ID
func (db *DB) SaveArtifact(ctx context.Context, configurationID uuid.UUID, filename string, content []byte, mimeType string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO document_artifacts (configuration_id, filename, mime_type, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		configurationID, filename, mimeType, content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save artifact %s: %w", filename, err)
	}
	return id, nil
}

// GetArtifactByID retrieves an artifact including its content
func (db *DB) GetArtifactByID(ctx context.Context, id uuid.UUID) (*DocumentArtifact, error) {
	var a DocumentArtifact
	err := db.pool.QueryRow(ctx,
		`SELECT id, configuration_id, filename, mime_type, content, created_at
		 FROM document_artifacts WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.ConfigurationID, &a.Filename, &a.MimeType, &a.Content, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact: %w", err)
	}
	a.Size = len(a.Content)
	return &a, nil
}

// ListArtifacts retrieves artifact metadata for a configuration, newest first
func (db *DB) ListArtifacts(ctx context.Context, configurationID uuid.UUID) ([]DocumentArtifact, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, configuration_id, filename, mime_type, octet_length(content), created_at
		 FROM document_artifacts WHERE configuration_id = $1 ORDER BY created_at DESC`,
		configurationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []DocumentArtifact
	for rows.Next() {
		var a DocumentArtifact
		if err := rows.Scan(&a.ID, &a.ConfigurationID, &a.Filename, &a.MimeType, &a.Size, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
