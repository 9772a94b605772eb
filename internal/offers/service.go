package offers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/types"
	"github.com/sirupsen/logrus"
)

// Store is the persistence the service needs; *db.DB implements it
type Store interface {
	GetEmployee(ctx context.Context, id uuid.UUID) (*types.Employee, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*types.Offer, error)
	SaveOffer(ctx context.Context, o *types.Offer) error
	GetShownEmployeeProperties(ctx context.Context, id uuid.UUID) (*types.ShownEmployeeProperties, error)
	UpdateShownEmployeeProperties(ctx context.Context, s *types.ShownEmployeeProperties) error
	SaveDocumentConfiguration(ctx context.Context, c *types.DocumentConfiguration) error
}

// Service applies lifecycle transitions. Mutations are serialized so concurrent requests on
// the same offer cannot lose each other's snapshots.
type Service struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
	mu    sync.Mutex
}

// NewService creates a Service over store
func NewService(store Store, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{store: store, log: log, now: time.Now}
}

func (s *Service) loadOffer(ctx context.Context, id uuid.UUID) (*types.Offer, error) {
	offer, err := s.store.GetOffer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}
	if offer == nil {
		return nil, &NotFoundError{Kind: "offer", ID: id.String()}
	}
	return offer, nil
}

// AddEmployee snapshots an employee onto an offer
func (s *Service) AddEmployee(ctx context.Context, offerID, employeeID uuid.UUID) (*types.ShownEmployeeProperties, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	employee, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	if employee == nil {
		return nil, &NotFoundError{Kind: "employee", ID: employeeID.String()}
	}

	snapshot, err := offer.AddEmployee(employee)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	snapshot.LastChanged = &now

	if err := s.store.SaveOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to save offer: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"offer_id":    offerID,
		"employee_id": employeeID,
		"snapshot_id": snapshot.ID,
	}).Info("employee added to offer")
	return snapshot, nil
}

// RemoveEmployee deletes a snapshot from an offer. Configurations that reference it become
// stale and fail at generation time.
func (s *Service) RemoveEmployee(ctx context.Context, offerID, snapshotID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return err
	}
	if !offer.RemoveEmployee(snapshotID) {
		return &NotFoundError{Kind: "shown employee", ID: snapshotID.String()}
	}
	if err := s.store.SaveOffer(ctx, offer); err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"offer_id":    offerID,
		"snapshot_id": snapshotID,
	}).Info("employee removed from offer")
	return nil
}

// UpdateShownEmployee applies an edit to a snapshot. Nil fields in the update are left
// unchanged; a selection naming experience outside the snapshot rejects the whole update.
func (s *Service) UpdateShownEmployee(ctx context.Context, snapshotID uuid.UUID, update types.ShownEmployeeUpdate) (*types.ShownEmployeeProperties, error) {
	if err := update.Validate(); err != nil {
		return nil, &RequestError{Message: "invalid snapshot update", Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.store.GetShownEmployeeProperties(ctx, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, &NotFoundError{Kind: "shown employee", ID: snapshotID.String()}
	}

	if err := ApplyUpdate(snapshot, update); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	snapshot.LastChanged = &now

	if err := s.store.UpdateShownEmployeeProperties(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return snapshot, nil
}

// ApplyUpdate edits snapshot in place. On error the snapshot is unchanged.
func ApplyUpdate(snapshot *types.ShownEmployeeProperties, update types.ShownEmployeeUpdate) error {
	if update.SelectedExperienceIDs != nil {
		if err := snapshot.SetSelectedExperience(update.SelectedExperienceIDs); err != nil {
			return err
		}
	}
	if update.ProjectIDs != nil {
		snapshot.ProjectIDs = nil
		snapshot.SelectProjects(update.ProjectIDs...)
	}
	if update.ProjectActivityIDs != nil {
		snapshot.ProjectActivityIDs = nil
		snapshot.SelectProjectActivities(update.ProjectActivityIDs...)
	}
	if update.ClearPlannedHours {
		snapshot.SetPlannedWeeklyHours(nil)
	} else if update.PlannedWeeklyHours != nil {
		snapshot.SetPlannedWeeklyHours(update.PlannedWeeklyHours)
	}
	if update.Discount != nil {
		snapshot.Discount = *update.Discount
	}
	return nil
}

// CreateDocumentConfiguration records a named export over snapshots of an offer. Every
// snapshot ID must belong to the offer when the configuration is created.
func (s *Service) CreateDocumentConfiguration(ctx context.Context, offerID uuid.UUID, req types.DocumentConfigurationRequest) (*types.DocumentConfiguration, error) {
	if err := req.Validate(); err != nil {
		return nil, &RequestError{Message: "invalid document configuration", Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	cfg, err := types.NewDocumentConfiguration(req.Title, offer, req.ShownEmployeePropertyIDs, req.Options())
	if err != nil {
		return nil, &RequestError{Message: "invalid document configuration", Cause: err}
	}
	if err := cfg.CheckReferences(offer); err != nil {
		return nil, &RequestError{Message: "snapshots are not on this offer", Cause: err}
	}

	if err := s.store.SaveDocumentConfiguration(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save document configuration: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"offer_id":         offerID,
		"configuration_id": cfg.ID,
		"snapshots":        len(cfg.ShownEmployeePropertyIDs),
	}).Info("document configuration created")
	return cfg, nil
}
