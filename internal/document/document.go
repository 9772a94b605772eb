package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/pricing"
	"github.com/shopspring/decimal"
)

// SectionKind identifies a document section
type SectionKind string

// Section kinds in the order they can appear
const (
	SectionCover              SectionKind = "cover"
	SectionRequiredExperience SectionKind = "required_experience"
	SectionEmployee           SectionKind = "employee"
)

// Document is the fully resolved content of one generation, ready for rendering
type Document struct {
	ConfigurationID uuid.UUID `json:"configuration_id"`
	OfferID         uuid.UUID `json:"offer_id"`
	Title           string    `json:"title"`
	OfferTitle      string    `json:"offer_title"`
	GeneratedAt     time.Time `json:"generated_at"`
	Sections        []Section `json:"sections"`
}

// Section is one ordered part of a document. Exactly one of the payload pointers is set,
// matching Kind.
type Section struct {
	Kind     SectionKind        `json:"kind"`
	Title    string             `json:"title"`
	Cover    *CoverSheet        `json:"cover,omitempty"`
	Required *ExperienceListing `json:"required,omitempty"`
	Employee *EmployeeSection   `json:"employee,omitempty"`
}

// CoverSheet summarizes the offer
type CoverSheet struct {
	OfferTitle       string           `json:"offer_title"`
	Start            *time.Time       `json:"start,omitempty"`
	End              *time.Time       `json:"end,omitempty"`
	EmployeeNames    []string         `json:"employee_names"`
	TotalWeeklyPrice *decimal.Decimal `json:"total_weekly_price,omitempty"`
}

// ExperienceListing is a UsedExperience flattened into categories in fixed order
type ExperienceListing struct {
	Categories []ExperienceCategory `json:"categories"`
}

// ExperienceCategory holds the items of one experience kind
type ExperienceCategory struct {
	Kind  string           `json:"kind"`
	Label string           `json:"label"`
	Items []ExperienceItem `json:"items"`
}

// ExperienceItem is one displayed experience
type ExperienceItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	Level    string    `json:"level,omitempty"`
}

// EmployeeSection is everything shown for one proposed employee
type EmployeeSection struct {
	SnapshotID             uuid.UUID         `json:"snapshot_id"`
	EmployeeID             uuid.UUID         `json:"employee_id"`
	Name                   string            `json:"name"`
	RateCardLevel          int               `json:"rate_card_level"`
	RelevantWorkExperience int               `json:"relevant_work_experience"`
	Experience             ExperienceListing `json:"experience"`
	Projects               []ProjectSection  `json:"projects"`
	Price                  *pricing.Line     `json:"price,omitempty"`
}

// ProjectSection is a project with only the selected activities
type ProjectSection struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Field       string     `json:"field,omitempty"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	Description string     `json:"description"`
	Activities  []string   `json:"activities"`
}

// CountSections returns how many sections of kind the document holds
func (d *Document) CountSections(kind SectionKind) int {
	n := 0
	for _, s := range d.Sections {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// Employees returns the employee sections in document order
func (d *Document) Employees() []*EmployeeSection {
	var out []*EmployeeSection
	for _, s := range d.Sections {
		if s.Kind == SectionEmployee {
			out = append(out, s.Employee)
		}
	}
	return out
}

// Artifact is a rendered document ready for hand-off
type Artifact struct {
	Filename string
	Content  []byte
	MimeType string
}

// DownloadResult reports whether the download collaborator accepted an artifact
type DownloadResult struct {
	Succeeded bool
	Location  string
}

// Result is returned by a successful generation
type Result struct {
	Document *Document
	Artifact *Artifact
	Download DownloadResult
}
