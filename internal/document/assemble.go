package document

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/offer-composer/internal/types"
)

// RequiredExperienceTitle is the heading of the offer's required-experience section
const RequiredExperienceTitle = "Required Experience"

// assemble lays out sections in their fixed order: cover, required experience, then one
// section per snapshot in configuration order.
func assemble(cfg *types.DocumentConfiguration, offer *types.Offer, employees []resolvedEmployee, now time.Time) *Document {
	doc := &Document{
		ConfigurationID: cfg.ID,
		OfferID:         offer.ID,
		Title:           cfg.Title,
		OfferTitle:      offer.Title,
		GeneratedAt:     now.UTC(),
	}

	if cfg.ShowCoverSheet {
		cover := &CoverSheet{
			OfferTitle:    offer.Title,
			Start:         offer.Start,
			End:           offer.End,
			EmployeeNames: make([]string, 0, len(employees)),
		}
		for _, e := range employees {
			cover.EmployeeNames = append(cover.EmployeeNames, e.employee.FullName())
		}
		if cfg.IncludePriceCalculation {
			cover.TotalWeeklyPrice = totalPrice(employees)
		}
		doc.Sections = append(doc.Sections, Section{Kind: SectionCover, Title: offer.Title, Cover: cover})
	}

	if cfg.ShowRequiredExperience {
		listing := listExperience(offer.Experience)
		doc.Sections = append(doc.Sections, Section{
			Kind:     SectionRequiredExperience,
			Title:    RequiredExperienceTitle,
			Required: &listing,
		})
	}

	for _, e := range employees {
		section := employeeSection(e, now)
		if !cfg.IncludePriceCalculation {
			section.Price = nil
		}
		doc.Sections = append(doc.Sections, Section{Kind: SectionEmployee, Title: section.Name, Employee: section})
	}

	return doc
}

func employeeSection(e resolvedEmployee, now time.Time) *EmployeeSection {
	// Only what is both in the snapshot and selected is shown.
	selected := e.snapshot.Experience.Subset(e.snapshot.SelectedExperience.IDs())

	projects := append([]types.Project(nil), e.projects...)
	types.SortByStartDesc(projects)

	section := &EmployeeSection{
		SnapshotID:             e.snapshot.ID,
		EmployeeID:             e.employee.ID,
		Name:                   e.employee.FullName(),
		RateCardLevel:          e.snapshot.RateCardLevel,
		RelevantWorkExperience: e.employee.RelevantWorkExperienceAt(now),
		Experience:             listExperience(selected),
		Projects:               make([]ProjectSection, 0, len(projects)),
		Price:                  e.price,
	}
	for _, p := range projects {
		section.Projects = append(section.Projects, projectSection(p))
	}
	return section
}

func projectSection(p types.Project) ProjectSection {
	ps := ProjectSection{
		ID:          p.ID,
		Title:       p.Title,
		Start:       p.Start,
		End:         p.End,
		Description: p.Description,
		Activities:  make([]string, 0, len(p.Activities)),
	}
	if p.Field != nil {
		ps.Field = p.Field.Name
	}
	for _, a := range p.Activities {
		ps.Activities = append(ps.Activities, a.Description)
	}
	return ps
}

// listExperience flattens u into categories following types.ExperienceKinds. Empty categories
// are omitted.
func listExperience(u types.UsedExperience) ExperienceListing {
	var listing ExperienceListing
	for _, kind := range types.ExperienceKinds {
		var items []ExperienceItem
		switch kind {
		case types.KindField:
			items = plainItems(u.Fields)
		case types.KindRole:
			items = plainItems(u.Roles)
		case types.KindSoftSkill:
			items = plainItems(u.SoftSkills)
		case types.KindHardSkill:
			for _, h := range u.HardSkills {
				items = append(items, ExperienceItem{
					ID:       h.Skill.ID,
					Name:     h.Skill.Name,
					Category: h.Skill.Category,
					Level:    h.Level.Label(),
				})
			}
		case types.KindLanguage:
			for _, l := range u.Languages {
				items = append(items, ExperienceItem{ID: l.Language.ID, Name: l.Language.Name, Level: l.Level.Label()})
			}
		}
		if len(items) == 0 {
			continue
		}
		listing.Categories = append(listing.Categories, ExperienceCategory{
			Kind:  string(kind),
			Label: kind.Label(),
			Items: items,
		})
	}
	return listing
}

func plainItems(in []types.Experience) []ExperienceItem {
	out := make([]ExperienceItem, 0, len(in))
	for _, e := range in {
		out = append(out, ExperienceItem{ID: e.ID, Name: e.Name})
	}
	return out
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases s and collapses everything but letters and digits into single dashes
func Slug(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "document"
	}
	return slug
}

// FileStem is the artifact name without extension: offer title slug and generation date
func (d *Document) FileStem() string {
	return Slug(d.OfferTitle) + "_" + d.GeneratedAt.Format("20060102")
}
