package server

import (
	"net/http"

	"github.com/jonathan/offer-composer/internal/download"
	"github.com/jonathan/offer-composer/internal/offers"
	"github.com/sirupsen/logrus"
)

// handleGenerate renders a stored document configuration and streams the artifact back
// as an attachment
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	cfg, err := s.store.GetDocumentConfiguration(r.Context(), id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if cfg == nil {
		s.failure(w, r, &offers.NotFoundError{Kind: "document configuration", ID: id.String()})
		return
	}

	response := download.NewResponse(w)
	result, err := s.generator.WithDownloader(response).Generate(r.Context(), cfg)
	if err != nil {
		if response.Written() {
			// headers are gone; the client sees a truncated body
			s.log.WithError(err).WithField("configuration_id", cfg.ID).Error("generation failed mid-stream")
			return
		}
		s.failure(w, r, err)
		return
	}

	s.log.WithFields(logrus.Fields{
		"configuration_id": cfg.ID,
		"filename":         result.Artifact.Filename,
	}).Debug("artifact streamed")
}
