package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/offers"
	"github.com/jonathan/offer-composer/internal/schemas"
	"github.com/jonathan/offer-composer/internal/types"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// ExperienceResponse is the body of GET /employees/{id}/experience
type ExperienceResponse struct {
	EmployeeID             uuid.UUID            `json:"employee_id"`
	Name                   string               `json:"name"`
	RelevantWorkExperience int                  `json:"relevant_work_experience"`
	RateCardLevel          int                  `json:"rate_card_level"`
	Experience             types.UsedExperience `json:"experience"`
	ComputedAt             time.Time            `json:"computed_at"`
}

// handleEmployeeExperience returns an employee's relevant work experience in years
func (s *Server) handleEmployeeExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	employee, err := s.store.GetEmployee(r.Context(), id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if employee == nil {
		s.failure(w, r, &offers.NotFoundError{Kind: "employee", ID: id.String()})
		return
	}

	now := s.now()
	s.jsonResponse(w, http.StatusOK, ExperienceResponse{
		EmployeeID:             employee.ID,
		Name:                   employee.FullName(),
		RelevantWorkExperience: employee.RelevantWorkExperienceAt(now),
		RateCardLevel:          employee.RateCardLevel,
		Experience:             employee.Experience,
		ComputedAt:             now.UTC(),
	})
}

// handleListEmployees lists every employee by name
func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.store.ListEmployees(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if employees == nil {
		employees = []types.Employee{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"employees": employees,
		"count":     len(employees),
	})
}

// handleListOffers lists offer headers, newest first. ?limit= caps the result.
func (s *Server) handleListOffers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	list, err := s.store.ListOffers(r.Context(), limit)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if list == nil {
		list = []types.Offer{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"offers": list,
		"count":  len(list),
	})
}

// handleGetOffer returns an offer with its snapshots
func (s *Server) handleGetOffer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	offer, err := s.store.GetOffer(r.Context(), id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if offer == nil {
		s.failure(w, r, &offers.NotFoundError{Kind: "offer", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, offer)
}

// handleAddEmployee snapshots an employee onto an offer
func (s *Server) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	offerID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req types.AddEmployeeRequest
	if !s.decode(w, r, "", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, &offers.RequestError{Message: "invalid request", Cause: err})
		return
	}

	snapshot, err := s.offers.AddEmployee(r.Context(), offerID, req.EmployeeID)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, snapshot)
}

// handleRemoveEmployee drops a snapshot from its offer
func (s *Server) handleRemoveEmployee(w http.ResponseWriter, r *http.Request) {
	offerID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	snapshotID, ok := s.pathID(w, r, "snapshot_id")
	if !ok {
		return
	}

	if err := s.offers.RemoveEmployee(r.Context(), offerID, snapshotID); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateShownEmployee edits the selection and pricing inputs of a snapshot
func (s *Server) handleUpdateShownEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var update types.ShownEmployeeUpdate
	if !s.decode(w, r, schemas.ShownEmployeeUpdate, &update) {
		return
	}

	snapshot, err := s.offers.UpdateShownEmployee(r.Context(), id, update)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, snapshot)
}

// handleListConfigurations lists the document configurations of an offer
func (s *Server) handleListConfigurations(w http.ResponseWriter, r *http.Request) {
	offerID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	configs, err := s.store.ListDocumentConfigurations(r.Context(), offerID)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if configs == nil {
		configs = []types.DocumentConfiguration{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"document_configurations": configs,
		"count":                   len(configs),
	})
}

// handleCreateConfiguration records a document configuration on an offer
func (s *Server) handleCreateConfiguration(w http.ResponseWriter, r *http.Request) {
	offerID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req types.DocumentConfigurationRequest
	if !s.decode(w, r, "", &req) {
		return
	}

	cfg, err := s.offers.CreateDocumentConfiguration(r.Context(), offerID, req)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, cfg)
}

// handleGetConfiguration returns one document configuration
func (s *Server) handleGetConfiguration(w http.ResponseWriter, r *http.Request) {
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
	s.jsonResponse(w, http.StatusOK, cfg)
}

// decode reads a JSON body into out, validating it against the named schema first when
// one is given. It writes the error response itself and reports whether to continue.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, schema string, out any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}

	if schema != "" {
		if err := schemas.Validate(schema, body); err != nil {
			s.failure(w, r, err)
			return false
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
