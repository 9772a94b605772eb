package types

import (
	"fmt"

	"github.com/google/uuid"
)

// UsedExperience holds the five independent experience collections of an employee or offer.
// Order within a collection is never significant. Inserts do not deduplicate.
type UsedExperience struct {
	Fields     []Experience     `json:"fields"`
	Roles      []Experience     `json:"roles"`
	SoftSkills []Experience     `json:"soft_skills"`
	HardSkills []HardSkillEntry `json:"hard_skills"`
	Languages  []LanguageEntry  `json:"languages"`
}

// AddField appends a field
func (u *UsedExperience) AddField(e Experience) { u.Fields = append(u.Fields, e) }

// AddRole appends a role
func (u *UsedExperience) AddRole(e Experience) { u.Roles = append(u.Roles, e) }

// AddSoftSkill appends a soft skill
func (u *UsedExperience) AddSoftSkill(e Experience) { u.SoftSkills = append(u.SoftSkills, e) }

// AddHardSkill appends a hard skill with its level
func (u *UsedExperience) AddHardSkill(e Experience, level HardSkillLevel) {
	u.HardSkills = append(u.HardSkills, HardSkillEntry{Skill: e, Level: level})
}

// AddLanguage appends a language with its level
func (u *UsedExperience) AddLanguage(e Experience, level LanguageLevel) {
	u.Languages = append(u.Languages, LanguageEntry{Language: e, Level: level})
}

// Len returns the total number of elements across all collections
func (u UsedExperience) Len() int {
	return len(u.Fields) + len(u.Roles) + len(u.SoftSkills) + len(u.HardSkills) + len(u.Languages)
}

// Clone returns a deep copy. The result shares no slices or pointers with u.
func (u UsedExperience) Clone() UsedExperience {
	return UsedExperience{
		Fields:     cloneExperiences(u.Fields),
		Roles:      cloneExperiences(u.Roles),
		SoftSkills: cloneExperiences(u.SoftSkills),
		HardSkills: cloneHardSkills(u.HardSkills),
		Languages:  cloneLanguages(u.Languages),
	}
}

func cloneExperiences(in []Experience) []Experience {
	if in == nil {
		return nil
	}
	out := make([]Experience, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

func cloneHardSkills(in []HardSkillEntry) []HardSkillEntry {
	if in == nil {
		return nil
	}
	out := make([]HardSkillEntry, len(in))
	for i, h := range in {
		out[i] = HardSkillEntry{Skill: h.Skill.Clone(), Level: h.Level}
	}
	return out
}

func cloneLanguages(in []LanguageEntry) []LanguageEntry {
	if in == nil {
		return nil
	}
	out := make([]LanguageEntry, len(in))
	for i, l := range in {
		out[i] = LanguageEntry{Language: l.Language.Clone(), Level: l.Level}
	}
	return out
}

// GetSkillByID searches all five collections for an experience with the given ID
func (u UsedExperience) GetSkillByID(id uuid.UUID) (Experience, bool) {
	for _, collection := range [][]Experience{u.Fields, u.Roles, u.SoftSkills} {
		for _, e := range collection {
			if e.ID == id {
				return e, true
			}
		}
	}
	for _, h := range u.HardSkills {
		if h.Skill.ID == id {
			return h.Skill, true
		}
	}
	for _, l := range u.Languages {
		if l.Language.ID == id {
			return l.Language, true
		}
	}
	return Experience{}, false
}

// Contains reports whether any collection holds the ID
func (u UsedExperience) Contains(id uuid.UUID) bool {
	_, ok := u.GetSkillByID(id)
	return ok
}

// IDs returns the set of all experience IDs
func (u UsedExperience) IDs() map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{}, u.Len())
	u.each(func(e Experience) { ids[e.ID] = struct{}{} })
	return ids
}

func (u UsedExperience) each(fn func(Experience)) {
	for _, collection := range [][]Experience{u.Fields, u.Roles, u.SoftSkills} {
		for _, e := range collection {
			fn(e)
		}
	}
	for _, h := range u.HardSkills {
		fn(h.Skill)
	}
	for _, l := range u.Languages {
		fn(l.Language)
	}
}

// IsSubsetOf reports whether every ID in u is present in other
func (u UsedExperience) IsSubsetOf(other UsedExperience) bool {
	ids := other.IDs()
	subset := true
	u.each(func(e Experience) {
		if _, ok := ids[e.ID]; !ok {
			subset = false
		}
	})
	return subset
}

// Subset returns a deep copy keeping only elements whose ID is in ids.
// Relative order within each collection is preserved.
func (u UsedExperience) Subset(ids map[uuid.UUID]struct{}) UsedExperience {
	var out UsedExperience
	keep := func(id uuid.UUID) bool {
		_, ok := ids[id]
		return ok
	}
	for _, e := range u.Fields {
		if keep(e.ID) {
			out.Fields = append(out.Fields, e.Clone())
		}
	}
	for _, e := range u.Roles {
		if keep(e.ID) {
			out.Roles = append(out.Roles, e.Clone())
		}
	}
	for _, e := range u.SoftSkills {
		if keep(e.ID) {
			out.SoftSkills = append(out.SoftSkills, e.Clone())
		}
	}
	for _, h := range u.HardSkills {
		if keep(h.Skill.ID) {
			out.HardSkills = append(out.HardSkills, HardSkillEntry{Skill: h.Skill.Clone(), Level: h.Level})
		}
	}
	for _, l := range u.Languages {
		if keep(l.Language.ID) {
			out.Languages = append(out.Languages, LanguageEntry{Language: l.Language.Clone(), Level: l.Level})
		}
	}
	return out
}

// experienceKey is the comparable structural identity of an Experience
type experienceKey struct {
	ID       uuid.UUID
	Kind     ExperienceKind
	Name     string
	Category string
}

func keyOf(e Experience) experienceKey {
	return experienceKey{ID: e.ID, Kind: e.Kind, Name: e.Name, Category: e.Category}
}

type levelledKey struct {
	experienceKey
	Level string
}

func experienceSet(in []Experience) map[experienceKey]struct{} {
	set := make(map[experienceKey]struct{}, len(in))
	for _, e := range in {
		set[keyOf(e)] = struct{}{}
	}
	return set
}

func hardSkillSet(in []HardSkillEntry) map[levelledKey]struct{} {
	set := make(map[levelledKey]struct{}, len(in))
	for _, h := range in {
		set[levelledKey{keyOf(h.Skill), string(h.Level)}] = struct{}{}
	}
	return set
}

func languageSet(in []LanguageEntry) map[levelledKey]struct{} {
	set := make(map[levelledKey]struct{}, len(in))
	for _, l := range in {
		set[levelledKey{keyOf(l.Language), string(l.Level)}] = struct{}{}
	}
	return set
}

func sameSet[K comparable](a, b map[K]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// Equal reports set equality of every collection, in both directions and regardless of order
func (u UsedExperience) Equal(other UsedExperience) bool {
	return sameSet(experienceSet(u.Fields), experienceSet(other.Fields)) &&
		sameSet(experienceSet(u.Roles), experienceSet(other.Roles)) &&
		sameSet(experienceSet(u.SoftSkills), experienceSet(other.SoftSkills)) &&
		sameSet(hardSkillSet(u.HardSkills), hardSkillSet(other.HardSkills)) &&
		sameSet(languageSet(u.Languages), languageSet(other.Languages))
}

// Validate checks every element and that each sits in the collection matching its kind
func (u UsedExperience) Validate() error {
	check := func(e Experience, want ExperienceKind) error {
		if err := e.Validate(); err != nil {
			return err
		}
		if e.Kind != want {
			return &ValidationError{
				Field:   string(want),
				Message: fmt.Sprintf("experience %s of kind %s stored as %s", e.ID, e.Kind, want),
			}
		}
		return nil
	}
	for _, e := range u.Fields {
		if err := check(e, KindField); err != nil {
			return err
		}
	}
	for _, e := range u.Roles {
		if err := check(e, KindRole); err != nil {
			return err
		}
	}
	for _, e := range u.SoftSkills {
		if err := check(e, KindSoftSkill); err != nil {
			return err
		}
	}
	for _, h := range u.HardSkills {
		if err := check(h.Skill, KindHardSkill); err != nil {
			return err
		}
		if !h.Level.Valid() {
			return &ValidationError{Field: "hard_skills", Message: fmt.Sprintf("invalid level %q for %s", h.Level, h.Skill.Name)}
		}
	}
	for _, l := range u.Languages {
		if err := check(l.Language, KindLanguage); err != nil {
			return err
		}
		if !l.Level.Valid() {
			return &ValidationError{Field: "languages", Message: fmt.Sprintf("invalid level %q for %s", l.Level, l.Language.Name)}
		}
	}
	return nil
}
