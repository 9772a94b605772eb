package types

import (
	"time"

	"github.com/google/uuid"
)

// Offer is a sales offer: its own required experience profile, the employees proposed on it
// (as snapshots, in display order) and the document configurations generated against it.
type Offer struct {
	ID    uuid.UUID  `json:"id"`
	Title string     `json:"title"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`

	Experience               UsedExperience             `json:"experience"`
	ShortEmployees           []*ShownEmployeeProperties `json:"short_employees"`
	DocumentConfigurationIDs []uuid.UUID                `json:"document_configuration_ids"`
}

// NewOffer creates an offer with a fresh ID
func NewOffer(title string) *Offer {
	return &Offer{ID: uuid.New(), Title: title}
}

// AddEmployee proposes employee on the offer by snapshotting its rate-card level and experience.
// An employee that already has a snapshot on this offer is rejected.
func (o *Offer) AddEmployee(employee *Employee) (*ShownEmployeeProperties, error) {
	for _, s := range o.ShortEmployees {
		if s.EmployeeID == employee.ID {
			return nil, ErrEmployeeAlreadyProposed
		}
	}
	snapshot := NewShownEmployeeProperties(o.ID, employee)
	o.ShortEmployees = append(o.ShortEmployees, snapshot)
	return snapshot, nil
}

// RemoveEmployee deletes the snapshot with the given ID. It reports whether one was removed.
func (o *Offer) RemoveEmployee(snapshotID uuid.UUID) bool {
	for i, s := range o.ShortEmployees {
		if s.ID == snapshotID {
			o.ShortEmployees = append(o.ShortEmployees[:i], o.ShortEmployees[i+1:]...)
			return true
		}
	}
	return false
}

// ShownEmployee looks up a snapshot by ID
func (o *Offer) ShownEmployee(snapshotID uuid.UUID) (*ShownEmployeeProperties, bool) {
	for _, s := range o.ShortEmployees {
		if s.ID == snapshotID {
			return s, true
		}
	}
	return nil, false
}

// ShownEmployeeIDs returns the snapshot IDs in display order
func (o *Offer) ShownEmployeeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(o.ShortEmployees))
	for i, s := range o.ShortEmployees {
		ids[i] = s.ID
	}
	return ids
}

// RegisterDocumentConfiguration records a configuration generated against the offer
func (o *Offer) RegisterDocumentConfiguration(id uuid.UUID) {
	o.DocumentConfigurationIDs = appendUnique(o.DocumentConfigurationIDs, id)
}

// Validate checks the title, date window and required experience
func (o *Offer) Validate() error {
	if o.Title == "" {
		return &ValidationError{Field: "title", Message: "offer title is required"}
	}
	if o.Start != nil && o.End != nil && o.End.Before(*o.Start) {
		return &ValidationError{Field: "end", Message: "offer end date precedes start date"}
	}
	return o.Experience.Validate()
}
