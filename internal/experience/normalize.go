package experience

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/types"
)

// NormalizeCatalog applies all normalization steps and then validates every entity
func NormalizeCatalog(c *Catalog) error {
	for i := range c.Employees {
		e := &c.Employees[i]
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.UserName = strings.TrimSpace(e.UserName)
		e.FirstName = NormalizeName(e.FirstName)
		e.LastName = NormalizeName(e.LastName)
		NormalizeExperience(&e.Experience)
		if err := e.Validate(); err != nil {
			return &NormalizationError{Message: fmt.Sprintf("employee %q", e.UserName), Cause: err}
		}
	}

	for i := range c.Projects {
		p := &c.Projects[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		p.Title = NormalizeName(p.Title)
		if p.Field != nil {
			*p.Field = normalizeEntry(*p.Field, types.KindField)
		}
		for j := range p.Activities {
			if p.Activities[j].ID == uuid.Nil {
				p.Activities[j].ID = uuid.New()
			}
			p.Activities[j].Description = strings.TrimSpace(p.Activities[j].Description)
		}
		if err := p.Validate(); err != nil {
			return &NormalizationError{Message: fmt.Sprintf("project %q", p.Title), Cause: err}
		}
	}

	for i := range c.Offers {
		o := &c.Offers[i]
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		o.Title = NormalizeName(o.Title)
		NormalizeExperience(&o.Experience)
		if err := o.Validate(); err != nil {
			return &NormalizationError{Message: fmt.Sprintf("offer %q", o.Title), Cause: err}
		}
	}

	seen := make(map[int]struct{}, len(c.WageRates))
	for _, r := range c.WageRates {
		if _, dup := seen[r.RateCardLevel]; dup {
			return &NormalizationError{Message: fmt.Sprintf("rate-card level %d listed twice", r.RateCardLevel)}
		}
		if r.HourlyRate.IsNegative() {
			return &NormalizationError{Message: fmt.Sprintf("rate-card level %d has a negative rate", r.RateCardLevel)}
		}
		seen[r.RateCardLevel] = struct{}{}
	}

	return nil
}

// NormalizeName trims s and collapses inner whitespace
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeSkillName is NormalizeName plus capitalizing all-lowercase single words ("go" -> "Go")
func NormalizeSkillName(s string) string {
	name := NormalizeName(s)
	if name == "" || strings.Contains(name, " ") || name != strings.ToLower(name) {
		return name
	}
	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(first)) + name[size:]
}

// NormalizeExperience fills missing IDs and kinds, normalizes names and drops repeated
// names within each kind. The first occurrence wins.
func NormalizeExperience(u *types.UsedExperience) {
	u.Fields = normalizeList(u.Fields, types.KindField)
	u.Roles = normalizeList(u.Roles, types.KindRole)
	u.SoftSkills = normalizeList(u.SoftSkills, types.KindSoftSkill)

	seen := make(map[string]struct{})
	hard := u.HardSkills[:0]
	for _, h := range u.HardSkills {
		h.Skill = normalizeEntry(h.Skill, types.KindHardSkill)
		h.Level = types.HardSkillLevel(strings.ToLower(strings.TrimSpace(string(h.Level))))
		if keep(seen, h.Skill.Name) {
			hard = append(hard, h)
		}
	}
	u.HardSkills = hard

	seen = make(map[string]struct{})
	langs := u.Languages[:0]
	for _, l := range u.Languages {
		l.Language = normalizeEntry(l.Language, types.KindLanguage)
		l.Level = types.LanguageLevel(strings.ToLower(strings.TrimSpace(string(l.Level))))
		if keep(seen, l.Language.Name) {
			langs = append(langs, l)
		}
	}
	u.Languages = langs
}

func normalizeList(in []types.Experience, kind types.ExperienceKind) []types.Experience {
	seen := make(map[string]struct{})
	out := in[:0]
	for _, e := range in {
		e = normalizeEntry(e, kind)
		if keep(seen, e.Name) {
			out = append(out, e)
		}
	}
	return out
}

func normalizeEntry(e types.Experience, kind types.ExperienceKind) types.Experience {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Kind == "" {
		e.Kind = kind
	}
	if kind == types.KindHardSkill {
		e.Name = NormalizeSkillName(e.Name)
		e.Category = NormalizeName(e.Category)
	} else {
		e.Name = NormalizeName(e.Name)
	}
	return e
}

// keep reports whether name is new to seen (case-insensitive) and records it. Empty names are
// kept so validation can report them.
func keep(seen map[string]struct{}, name string) bool {
	if name == "" {
		return true
	}
	key := strings.ToLower(name)
	if _, dup := seen[key]; dup {
		return false
	}
	seen[key] = struct{}{}
	return true
}
