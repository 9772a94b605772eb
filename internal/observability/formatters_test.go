package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/document"
	"github.com/jonathan/offer-composer/internal/pricing"
	"github.com/jonathan/offer-composer/internal/types"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "EUR")

	total := decimal.NewFromInt(2880)
	doc := &document.Document{
		Title:      "ACME proposal",
		OfferTitle: "Platform Rebuild",
		Sections: []document.Section{
			{Kind: document.SectionCover, Title: "Platform Rebuild", Cover: &document.CoverSheet{TotalWeeklyPrice: &total}},
			{Kind: document.SectionRequiredExperience, Title: "Required Experience", Required: &document.ExperienceListing{
				Categories: []document.ExperienceCategory{{Label: "Hard Skills", Items: make([]document.ExperienceItem, 2)}},
			}},
			{Kind: document.SectionEmployee, Title: "Ada Lovelace", Employee: &document.EmployeeSection{
				Name:          "Ada Lovelace",
				RateCardLevel: 3,
				Price:         &pricing.Line{WeeklyPrice: total},
			}},
		},
	}

	p.PrintDocument(doc)
	output := buf.String()

	assert.Contains(t, output, "GENERATED DOCUMENT")
	assert.Contains(t, output, "Platform Rebuild")
	assert.Contains(t, output, "Sections: 3")
	assert.Contains(t, output, "Hard Skills: 2")
	assert.Contains(t, output, "2880.00 EUR")
	assert.Contains(t, output, "Ada Lovelace")
}

func TestPrintNil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "")

	p.PrintDocument(nil)
	p.PrintEmployee(nil, time.Now())
	p.PrintConfiguration(nil)

	assert.Empty(t, buf.String())
}

func TestPrintEmployee(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "EUR")

	e := types.NewEmployee("alovelace", "Ada", "Lovelace")
	e.EmployedSince = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	e.WorkExperience = 2
	e.RateCardLevel = 5
	for _, name := range []string{"Go", "Rust", "SQL", "Kafka", "Terraform", "Bash"} {
		e.Experience.AddHardSkill(types.NewHardSkill(name, "Programming"), types.HardSkillExpert)
	}
	e.Experience.AddLanguage(types.NewLanguage("German"), types.LanguageNative)

	p.PrintEmployee(e, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	output := buf.String()

	assert.Contains(t, output, "Ada Lovelace (alovelace)")
	assert.Contains(t, output, "Experience: 6 years")
	assert.Contains(t, output, "... and 1 more")
	assert.Contains(t, output, "German")
	assert.NotContains(t, output, "Bash")
}

func TestPrintConfiguration(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "EUR")

	cfg := &types.DocumentConfiguration{
		Title:                    "Short",
		OfferID:                  uuid.New(),
		ShownEmployeePropertyIDs: []uuid.UUID{uuid.New(), uuid.New()},
	}
	cfg.ShowCoverSheet = true

	p.PrintConfiguration(cfg)
	output := buf.String()

	assert.Contains(t, output, "DOCUMENT CONFIGURATION")
	assert.Contains(t, output, "Employees: 2")
	assert.Contains(t, output, "[✓] cover")
	assert.Contains(t, output, "[✗] prices")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "")

	p.printBox("T", "ÄÖÜ"+string(bytes.Repeat([]byte("x"), 100)))
	assert.Contains(t, buf.String(), "...")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(false, &buf)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())

	log.WithField("offer_id", "o-1").Debug("hidden")
	log.WithField("offer_id", "o-1").Info("shown")
	require.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "offer_id=o-1")

	assert.Equal(t, logrus.DebugLevel, NewLogger(true, &buf).GetLevel())
	assert.NotNil(t, Discard())
}
