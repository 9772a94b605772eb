// Package types provides type definitions for structured data used throughout the offer-composer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExperienceKind tags the variant of an Experience
type ExperienceKind string

// Experience kinds, listed in document order
const (
	KindField     ExperienceKind = "field"
	KindRole      ExperienceKind = "role"
	KindSoftSkill ExperienceKind = "soft_skill"
	KindHardSkill ExperienceKind = "hard_skill"
	KindLanguage  ExperienceKind = "language"
)

// ExperienceKinds is the fixed order in which experience categories are emitted.
var ExperienceKinds = []ExperienceKind{KindField, KindRole, KindSoftSkill, KindHardSkill, KindLanguage}

// Valid reports whether k is a known kind
func (k ExperienceKind) Valid() bool {
	switch k {
	case KindField, KindRole, KindSoftSkill, KindHardSkill, KindLanguage:
		return true
	default:
		return false
	}
}

// Label returns the display heading for the kind
func (k ExperienceKind) Label() string {
	switch k {
	case KindField:
		return "Fields"
	case KindRole:
		return "Roles"
	case KindSoftSkill:
		return "Soft Skills"
	case KindHardSkill:
		return "Hard Skills"
	case KindLanguage:
		return "Languages"
	default:
		return string(k)
	}
}

// Experience is a named field, role, soft skill, hard skill or language with a stable ID.
// Category is only meaningful for hard skills.
type Experience struct {
	ID          uuid.UUID      `json:"id"`
	Kind        ExperienceKind `json:"kind"`
	Name        string         `json:"name"`
	Category    string         `json:"category,omitempty"`
	LastChanged *time.Time     `json:"last_changed,omitempty"`
}

func newExperience(kind ExperienceKind, name string) Experience {
	return Experience{ID: uuid.New(), Kind: kind, Name: name}
}

// NewField creates a field experience with a fresh ID
func NewField(name string) Experience { return newExperience(KindField, name) }

// NewRole creates a role experience with a fresh ID
func NewRole(name string) Experience { return newExperience(KindRole, name) }

// NewSoftSkill creates a soft skill experience with a fresh ID
func NewSoftSkill(name string) Experience { return newExperience(KindSoftSkill, name) }

// NewLanguage creates a language experience with a fresh ID
func NewLanguage(name string) Experience { return newExperience(KindLanguage, name) }

// NewHardSkill creates a hard skill experience with a fresh ID and category
func NewHardSkill(name, category string) Experience {
	e := newExperience(KindHardSkill, name)
	e.Category = category
	return e
}

// Rename changes the display name
func (e *Experience) Rename(name string) {
	e.Name = name
}

// SetCategory changes the hard skill category
func (e *Experience) SetCategory(category string) {
	e.Category = category
}

// Touch stamps LastChanged. Called by the persistence layer on write.
func (e *Experience) Touch(at time.Time) {
	t := at
	e.LastChanged = &t
}

// Equal compares ID, kind, name and category. LastChanged is ignored.
func (e Experience) Equal(other Experience) bool {
	return e.ID == other.ID &&
		e.Kind == other.Kind &&
		e.Name == other.Name &&
		e.Category == other.Category
}

// Clone returns a copy that shares no pointers with e
func (e Experience) Clone() Experience {
	c := e
	if e.LastChanged != nil {
		t := *e.LastChanged
		c.LastChanged = &t
	}
	return c
}

// Validate checks that the experience has an ID, a known kind and a name
func (e Experience) Validate() error {
	if e.ID == uuid.Nil {
		return &ValidationError{Field: "id", Message: "experience id is required"}
	}
	if !e.Kind.Valid() {
		return &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown experience kind %q", e.Kind)}
	}
	if e.Name == "" {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("%s %s has an empty name", e.Kind, e.ID)}
	}
	return nil
}

func (e Experience) String() string {
	if e.Kind == KindHardSkill && e.Category != "" {
		return fmt.Sprintf("%s (%s)", e.Name, e.Category)
	}
	return e.Name
}

// HardSkillLevel is the proficiency attached to a hard skill
type HardSkillLevel string

// Hard skill levels
const (
	HardSkillBasic        HardSkillLevel = "basic"
	HardSkillIntermediate HardSkillLevel = "intermediate"
	HardSkillAdvanced     HardSkillLevel = "advanced"
	HardSkillExpert       HardSkillLevel = "expert"
)

// Valid reports whether l is a known level
func (l HardSkillLevel) Valid() bool {
	switch l {
	case HardSkillBasic, HardSkillIntermediate, HardSkillAdvanced, HardSkillExpert:
		return true
	default:
		return false
	}
}

// Label returns the display form
func (l HardSkillLevel) Label() string {
	switch l {
	case HardSkillBasic:
		return "Basic knowledge"
	case HardSkillIntermediate:
		return "Intermediate"
	case HardSkillAdvanced:
		return "Advanced"
	case HardSkillExpert:
		return "Expert"
	default:
		return string(l)
	}
}

// LanguageLevel is the fluency attached to a language
type LanguageLevel string

// Language levels
const (
	LanguageBasic          LanguageLevel = "basic"
	LanguageBusinessFluent LanguageLevel = "business_fluent"
	LanguageFluent         LanguageLevel = "fluent"
	LanguageNative         LanguageLevel = "native"
)

// Valid reports whether l is a known level
func (l LanguageLevel) Valid() bool {
	switch l {
	case LanguageBasic, LanguageBusinessFluent, LanguageFluent, LanguageNative:
		return true
	default:
		return false
	}
}

// Label returns the display form
func (l LanguageLevel) Label() string {
	switch l {
	case LanguageBasic:
		return "Basic"
	case LanguageBusinessFluent:
		return "Business fluent"
	case LanguageFluent:
		return "Fluent"
	case LanguageNative:
		return "Native speaker"
	default:
		return string(l)
	}
}

// HardSkillEntry pairs a hard skill with a proficiency level
type HardSkillEntry struct {
	Skill Experience     `json:"skill"`
	Level HardSkillLevel `json:"level"`
}

// LanguageEntry pairs a language with a fluency level
type LanguageEntry struct {
	Language Experience    `json:"language"`
	Level    LanguageLevel `json:"level"`
}
