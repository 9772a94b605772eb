package types

import (
	"time"

	"github.com/google/uuid"
)

// ShownEmployeeProperties is an offer-scoped snapshot of an employee's rate-card level and
// experience. It is copied from the employee when the employee is added to an offer; later
// edits on either side do not reach the other.
type ShownEmployeeProperties struct {
	ID         uuid.UUID `json:"id"`
	OfferID    uuid.UUID `json:"offer_id"`
	EmployeeID uuid.UUID `json:"employee_id"`

	RateCardLevel      int            `json:"rate_card_level"`
	Experience         UsedExperience `json:"experience"`
	SelectedExperience UsedExperience `json:"selected_experience"`

	ProjectIDs         []uuid.UUID `json:"project_ids"`
	ProjectActivityIDs []uuid.UUID `json:"project_activity_ids"`

	PlannedWeeklyHours *float64   `json:"planned_weekly_hours,omitempty"`
	Discount           float64    `json:"discount"`
	LastChanged        *time.Time `json:"last_changed,omitempty"`
}

// NewShownEmployeeProperties snapshots employee for offerID. The selection starts as a full copy.
func NewShownEmployeeProperties(offerID uuid.UUID, employee *Employee) *ShownEmployeeProperties {
	return &ShownEmployeeProperties{
		ID:                 uuid.New(),
		OfferID:            offerID,
		EmployeeID:         employee.ID,
		RateCardLevel:      employee.RateCardLevel,
		Experience:         employee.Experience.Clone(),
		SelectedExperience: employee.Experience.Clone(),
	}
}

// SelectExperience adds experiences to the selection. If any ID is not part of the snapshot the
// call fails with *SelectionError and the selection is left unchanged.
func (s *ShownEmployeeProperties) SelectExperience(ids ...uuid.UUID) error {
	for _, id := range ids {
		if !s.Experience.Contains(id) {
			return &SelectionError{SnapshotID: s.ID, ExperienceID: id}
		}
	}
	selected := s.SelectedExperience.IDs()
	for _, id := range ids {
		selected[id] = struct{}{}
	}
	s.SelectedExperience = s.Experience.Subset(selected)
	return nil
}

// DeselectExperience removes experiences from the selection. Unknown IDs are ignored.
func (s *ShownEmployeeProperties) DeselectExperience(ids ...uuid.UUID) {
	selected := s.SelectedExperience.IDs()
	for _, id := range ids {
		delete(selected, id)
	}
	s.SelectedExperience = s.Experience.Subset(selected)
}

// SetSelectedExperience replaces the selection with exactly ids. All-or-nothing.
func (s *ShownEmployeeProperties) SetSelectedExperience(ids []uuid.UUID) error {
	for _, id := range ids {
		if !s.Experience.Contains(id) {
			return &SelectionError{SnapshotID: s.ID, ExperienceID: id}
		}
	}
	s.SelectedExperience = s.Experience.Subset(IDSet(ids))
	return nil
}

// CheckSelection verifies that the selection is a subset of the snapshot by ID
func (s *ShownEmployeeProperties) CheckSelection() error {
	available := s.Experience.IDs()
	var bad error
	s.SelectedExperience.each(func(e Experience) {
		if bad != nil {
			return
		}
		if _, ok := available[e.ID]; !ok {
			bad = &SelectionError{SnapshotID: s.ID, ExperienceID: e.ID}
		}
	})
	return bad
}

// SelectProjects adds project IDs, ignoring ones already selected
func (s *ShownEmployeeProperties) SelectProjects(ids ...uuid.UUID) {
	s.ProjectIDs = appendUnique(s.ProjectIDs, ids...)
}

// DeselectProjects removes project IDs
func (s *ShownEmployeeProperties) DeselectProjects(ids ...uuid.UUID) {
	s.ProjectIDs = removeIDs(s.ProjectIDs, ids...)
}

// SelectProjectActivities adds activity IDs, ignoring ones already selected
func (s *ShownEmployeeProperties) SelectProjectActivities(ids ...uuid.UUID) {
	s.ProjectActivityIDs = appendUnique(s.ProjectActivityIDs, ids...)
}

// DeselectProjectActivities removes activity IDs
func (s *ShownEmployeeProperties) DeselectProjectActivities(ids ...uuid.UUID) {
	s.ProjectActivityIDs = removeIDs(s.ProjectActivityIDs, ids...)
}

// SetPlannedWeeklyHours sets or clears (nil) the planned hours
func (s *ShownEmployeeProperties) SetPlannedWeeklyHours(hours *float64) {
	if hours == nil {
		s.PlannedWeeklyHours = nil
		return
	}
	h := *hours
	s.PlannedWeeklyHours = &h
}

// Clone returns a deep copy
func (s *ShownEmployeeProperties) Clone() *ShownEmployeeProperties {
	c := *s
	c.Experience = s.Experience.Clone()
	c.SelectedExperience = s.SelectedExperience.Clone()
	c.ProjectIDs = append([]uuid.UUID(nil), s.ProjectIDs...)
	c.ProjectActivityIDs = append([]uuid.UUID(nil), s.ProjectActivityIDs...)
	if s.PlannedWeeklyHours != nil {
		h := *s.PlannedWeeklyHours
		c.PlannedWeeklyHours = &h
	}
	if s.LastChanged != nil {
		t := *s.LastChanged
		c.LastChanged = &t
	}
	return &c
}
