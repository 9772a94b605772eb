package download

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/document"
)

// ArtifactStore persists artifact bytes
type ArtifactStore interface {
	SaveArtifact(ctx context.Context, configurationID uuid.UUID, filename string, content []byte, mimeType string) (uuid.UUID, error)
}

// Store hands artifacts to the database, keyed by the configuration that produced them
type Store struct {
	store           ArtifactStore
	configurationID uuid.UUID
}

// NewStore returns a Store writing artifacts for configurationID
func NewStore(store ArtifactStore, configurationID uuid.UUID) *Store {
	return &Store{store: store, configurationID: configurationID}
}

// DownloadFile saves the artifact. Location is "artifact:<id>".
func (s *Store) DownloadFile(ctx context.Context, filename string, content []byte, mimeType string) (document.DownloadResult, error) {
	id, err := s.store.SaveArtifact(ctx, s.configurationID, filename, content, mimeType)
	if err != nil {
		return document.DownloadResult{}, fmt.Errorf("failed to save artifact %s: %w", filename, err)
	}
	return document.DownloadResult{Succeeded: true, Location: "artifact:" + id.String()}, nil
}
