package types

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	daysPerYear = 365.25

	scientificAssistantWeight = 0.5
	studentAssistantWeight    = 0.3
)

// Employee is a person whose experience can be proposed on offers
type Employee struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"user_name"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`

	EmployedSince       time.Time `json:"employed_since"`
	WorkExperience      int       `json:"work_experience"`      // years outside the company
	ScientificAssistant int       `json:"scientific_assistant"` // years as scientific assistant
	StudentAssistant    int       `json:"student_assistant"`    // years as student assistant

	AuthorizationLevel int    `json:"authorization_level"`
	RateCardLevel      int    `json:"rate_card_level"`
	Image              []byte `json:"image,omitempty"`

	Experience UsedExperience `json:"experience"`
	ProjectIDs []uuid.UUID    `json:"project_ids"`
}

// NewEmployee creates an employee with a fresh ID. UserName cannot be changed afterwards.
func NewEmployee(userName, firstName, lastName string) *Employee {
	return &Employee{
		ID:        uuid.New(),
		UserName:  userName,
		FirstName: firstName,
		LastName:  lastName,
	}
}

// FullName joins first and last name
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// CalcRelevantWorkExperience returns the weighted years of relevant experience as of now
func (e *Employee) CalcRelevantWorkExperience() int {
	return e.RelevantWorkExperienceAt(time.Now())
}

// RelevantWorkExperienceAt returns
// round(yearsEmployed + workExperience + 0.5*scientificAssistant + 0.3*studentAssistant)
// where yearsEmployed is never negative.
func (e *Employee) RelevantWorkExperienceAt(now time.Time) int {
	yearsEmployed := now.Sub(e.EmployedSince).Hours() / 24 / daysPerYear
	if yearsEmployed < 0 {
		yearsEmployed = 0
	}
	total := yearsEmployed +
		float64(e.WorkExperience) +
		scientificAssistantWeight*float64(e.ScientificAssistant) +
		studentAssistantWeight*float64(e.StudentAssistant)
	return int(math.Round(total))
}

// HasProject reports whether the employee worked on the project
func (e *Employee) HasProject(projectID uuid.UUID) bool {
	for _, id := range e.ProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

// AddProject records a project the employee worked on. Adding twice is a no-op.
func (e *Employee) AddProject(projectID uuid.UUID) {
	if !e.HasProject(projectID) {
		e.ProjectIDs = append(e.ProjectIDs, projectID)
	}
}

// Validate checks identity fields and the embedded experience
func (e *Employee) Validate() error {
	if e.UserName == "" {
		return &ValidationError{Field: "user_name", Message: "user name is required"}
	}
	if e.WorkExperience < 0 || e.ScientificAssistant < 0 || e.StudentAssistant < 0 {
		return &ValidationError{Field: "experience_years", Message: "experience years cannot be negative"}
	}
	return e.Experience.Validate()
}
