package types

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Project is a past engagement employees can reference on offers
type Project struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Field       *Experience       `json:"field,omitempty"`
	Start       time.Time         `json:"start"`
	End         *time.Time        `json:"end,omitempty"`
	Description string            `json:"description"`
	Activities  []ProjectActivity `json:"activities"`
}

// ProjectActivity is one line of work within a project and the employees who did it
type ProjectActivity struct {
	ID          uuid.UUID   `json:"id"`
	Description string      `json:"description"`
	EmployeeIDs []uuid.UUID `json:"employee_ids"`
}

// NewProject creates a project with a fresh ID
func NewProject(title string, start time.Time) *Project {
	return &Project{ID: uuid.New(), Title: title, Start: start}
}

// NewProjectActivity creates an activity with a fresh ID
func NewProjectActivity(description string) ProjectActivity {
	return ProjectActivity{ID: uuid.New(), Description: description}
}

// AddActivity appends an activity, keeping order
func (p *Project) AddActivity(a ProjectActivity) {
	p.Activities = append(p.Activities, a)
}

// Activity looks up an activity by ID
func (p *Project) Activity(id uuid.UUID) (*ProjectActivity, bool) {
	for i := range p.Activities {
		if p.Activities[i].ID == id {
			return &p.Activities[i], true
		}
	}
	return nil, false
}

// ActivitiesFor returns the activities whose ID is in ids, in project order
func (p *Project) ActivitiesFor(ids []uuid.UUID) []ProjectActivity {
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []ProjectActivity
	for _, a := range p.Activities {
		if _, ok := wanted[a.ID]; ok {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Validate rejects an empty title and an end date before the start date
func (p *Project) Validate() error {
	if p.Title == "" {
		return &ValidationError{Field: "title", Message: "project title is required"}
	}
	if p.End != nil && p.End.Before(p.Start) {
		return &ValidationError{Field: "end", Message: "project end date precedes start date"}
	}
	if p.Field != nil && p.Field.Kind != KindField {
		return &ValidationError{Field: "field", Message: "project classification must be a field"}
	}
	return nil
}

// SortByStartDesc orders projects most recent first. Ties keep their input order.
func SortByStartDesc(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Start.After(projects[j].Start)
	})
}

// AddEmployee records a contributor. Adding an existing ID is a no-op.
func (a *ProjectActivity) AddEmployee(id uuid.UUID) {
	if a.HasEmployee(id) {
		return
	}
	a.EmployeeIDs = append(a.EmployeeIDs, id)
}

// RemoveEmployee drops a contributor if present
func (a *ProjectActivity) RemoveEmployee(id uuid.UUID) {
	for i, existing := range a.EmployeeIDs {
		if existing == id {
			a.EmployeeIDs = append(a.EmployeeIDs[:i], a.EmployeeIDs[i+1:]...)
			return
		}
	}
}

// HasEmployee reports whether id contributed to the activity
func (a *ProjectActivity) HasEmployee(id uuid.UUID) bool {
	for _, existing := range a.EmployeeIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// Clone copies the activity including its contributor list
func (a ProjectActivity) Clone() ProjectActivity {
	c := a
	if a.EmployeeIDs != nil {
		c.EmployeeIDs = append([]uuid.UUID(nil), a.EmployeeIDs...)
	}
	return c
}
