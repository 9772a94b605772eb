// Package observability provides logging and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/offer-composer/internal/document"
	"github.com/jonathan/offer-composer/internal/pricing"
	"github.com/jonathan/offer-composer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out      io.Writer
	currency string
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer, currency string) *Printer {
	return &Printer{out: out, currency: currency}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintDocument outputs the section layout of a generated document.
func (p *Printer) PrintDocument(doc *document.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Offer:    %s\n", doc.OfferTitle))
	sb.WriteString(fmt.Sprintf("Config:   %s\n", doc.Title))
	sb.WriteString(fmt.Sprintf("Sections: %d\n\n", len(doc.Sections)))

	for i, s := range doc.Sections {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, s.Kind, s.Title))
		switch s.Kind {
		case document.SectionCover:
			if s.Cover.TotalWeeklyPrice != nil {
				sb.WriteString(fmt.Sprintf("   Total weekly: %s\n", pricing.Format(*s.Cover.TotalWeeklyPrice, p.currency)))
			}
		case document.SectionRequiredExperience:
			sb.WriteString(fmt.Sprintf("   %s\n", summarizeListing(*s.Required)))
		case document.SectionEmployee:
			e := s.Employee
			sb.WriteString(fmt.Sprintf("   Level %d, %d years, %d projects\n",
				e.RateCardLevel, e.RelevantWorkExperience, len(e.Projects)))
			if e.Price != nil {
				sb.WriteString(fmt.Sprintf("   Weekly: %s\n", pricing.Format(e.Price.WeeklyPrice, p.currency)))
			}
		}
	}

	p.printBox("GENERATED DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

func summarizeListing(l document.ExperienceListing) string {
	if len(l.Categories) == 0 {
		return "no experience listed"
	}
	parts := make([]string, 0, len(l.Categories))
	for _, c := range l.Categories {
		parts = append(parts, fmt.Sprintf("%s: %d", c.Label, len(c.Items)))
	}
	return strings.Join(parts, ", ")
}

// PrintEmployee outputs an employee's relevant work experience and skills.
func (p *Printer) PrintEmployee(e *types.Employee, now time.Time) {
	if e == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s (%s)\n", e.FullName(), e.UserName))
	sb.WriteString(fmt.Sprintf("Level:      %d\n", e.RateCardLevel))
	sb.WriteString(fmt.Sprintf("Experience: %d years\n", e.RelevantWorkExperienceAt(now)))

	if len(e.Experience.HardSkills) > 0 {
		sb.WriteString("\nHard Skills:\n")
		count := min(len(e.Experience.HardSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			h := e.Experience.HardSkills[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", h.Skill.Name, h.Level.Label()))
		}
		if len(e.Experience.HardSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(e.Experience.HardSkills)-maxItemsToShow))
		}
	}

	if len(e.Experience.Languages) > 0 {
		sb.WriteString("\nLanguages:\n")
		for _, l := range e.Experience.Languages {
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", l.Language.Name, l.Level.Label()))
		}
	}

	p.printBox("EMPLOYEE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintConfiguration outputs a document configuration before generation.
func (p *Printer) PrintConfiguration(cfg *types.DocumentConfiguration) {
	if cfg == nil {
		return
	}

	flag := func(b bool) string {
		if b {
			return "✓"
		}
		return "✗"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:     %s\n", cfg.Title))
	sb.WriteString(fmt.Sprintf("Offer:     %s\n", cfg.OfferID))
	sb.WriteString(fmt.Sprintf("Employees: %d\n", len(cfg.ShownEmployeePropertyIDs)))
	sb.WriteString(fmt.Sprintf("[%s] cover  [%s] required  [%s] prices",
		flag(cfg.ShowCoverSheet), flag(cfg.ShowRequiredExperience), flag(cfg.IncludePriceCalculation)))

	p.printBox("DOCUMENT CONFIGURATION", sb.String())
}
