package experience

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog_ValidFile(t *testing.T) {
	c, err := LoadCatalog(filepath.Join("testdata", "catalog.json"))
	require.NoError(t, err)

	require.Len(t, c.WageRates, 2)
	assert.True(t, decimal.RequireFromString("120.5").Equal(c.WageRates[1].HourlyRate))
	require.Len(t, c.Projects, 1)
	assert.Len(t, c.Projects[0].Activities, 2)
	require.Len(t, c.Employees, 1)
	assert.Len(t, c.Employees[0].Experience.HardSkills, 2)
	require.Len(t, c.Offers, 1)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join("testdata", "missing.json"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "failed to read file")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{ not json"), 0644))
	_, err = LoadCatalog(path)
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "failed to unmarshal JSON")
}

func TestNormalizeCatalog(t *testing.T) {
	c, err := LoadCatalog(filepath.Join("testdata", "catalog.json"))
	require.NoError(t, err)
	require.NoError(t, NormalizeCatalog(c))

	e := c.Employees[0]
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, "alovelace", e.UserName)

	// duplicates collapse to the first occurrence
	require.Len(t, e.Experience.Roles, 1)
	assert.Equal(t, types.KindRole, e.Experience.Roles[0].Kind)
	require.Len(t, e.Experience.HardSkills, 1)
	assert.Equal(t, "Go", e.Experience.HardSkills[0].Skill.Name)
	assert.Equal(t, types.HardSkillExpert, e.Experience.HardSkills[0].Level)
	assert.NotEqual(t, uuid.Nil, e.Experience.HardSkills[0].Skill.ID)

	p := c.Projects[0]
	assert.Equal(t, "Billing Platform", p.Title)
	require.NotNil(t, p.Field)
	assert.Equal(t, types.KindField, p.Field.Kind)
	assert.Equal(t, "Designed the ledger schema", p.Activities[0].Description)
	assert.NotEqual(t, uuid.Nil, p.Activities[1].ID)

	assert.Equal(t, types.KindHardSkill, c.Offers[0].Experience.HardSkills[0].Skill.Kind)
}

func TestNormalizeCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		want    string
	}{
		{"employee without user name", Catalog{Employees: []types.Employee{{FirstName: "A"}}}, "user name"},
		{"bad hard skill level", Catalog{Employees: []types.Employee{{
			UserName: "x",
			Experience: types.UsedExperience{HardSkills: []types.HardSkillEntry{
				{Skill: types.Experience{Name: "Go"}, Level: "guru"},
			}},
		}}}, "invalid level"},
		{"offer without title", Catalog{Offers: []types.Offer{{}}}, "offer title"},
		{"duplicate rate", Catalog{WageRates: []WageRate{{RateCardLevel: 1}, {RateCardLevel: 1}}}, "listed twice"},
		{"negative rate", Catalog{WageRates: []WageRate{{RateCardLevel: 1, HourlyRate: decimal.NewFromInt(-5)}}}, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NormalizeCatalog(&tt.catalog)
			var normErr *NormalizationError
			require.ErrorAs(t, err, &normErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNormalizeSkillName(t *testing.T) {
	tests := map[string]string{
		"go":               "Go",
		"  postgres  ":     "Postgres",
		"JavaScript":       "JavaScript",
		"machine learning": "machine learning",
		"SQL":              "SQL",
		"":                 "",
		"élixir":           "Élixir",
		"übersetzung":      "Übersetzung",
		"日本語":              "日本語",
	}
	for in, want := range tests {
		got := NormalizeSkillName(in)
		assert.Equal(t, want, got, "input %q", in)
		assert.True(t, utf8.ValidString(got), "input %q", in)
	}
}

// recordingStore records save order
type recordingStore struct {
	calls  []string
	failOn string
}

func (s *recordingStore) record(kind string) error {
	if kind == s.failOn {
		return errors.New("write failed")
	}
	s.calls = append(s.calls, kind)
	return nil
}

func (s *recordingStore) SetHourlyRate(context.Context, int, decimal.Decimal) error {
	return s.record("rate")
}
func (s *recordingStore) SaveProject(context.Context, *types.Project) error {
	return s.record("project")
}
func (s *recordingStore) SaveEmployee(context.Context, *types.Employee) error {
	return s.record("employee")
}
func (s *recordingStore) SaveOffer(context.Context, *types.Offer) error { return s.record("offer") }

func TestImport(t *testing.T) {
	c, err := LoadCatalog(filepath.Join("testdata", "catalog.json"))
	require.NoError(t, err)

	store := &recordingStore{}
	summary, err := Import(context.Background(), store, c)
	require.NoError(t, err)

	assert.Equal(t, []string{"rate", "rate", "project", "employee", "offer"}, store.calls)
	assert.Equal(t, Summary{WageRates: 2, Projects: 1, Employees: 1, Offers: 1}, summary)
	assert.Equal(t, "2 wage rates, 1 projects, 1 employees, 1 offers", summary.String())
}

func TestImport_StopsAtFirstFailure(t *testing.T) {
	c, err := LoadCatalog(filepath.Join("testdata", "catalog.json"))
	require.NoError(t, err)

	store := &recordingStore{failOn: "employee"}
	summary, err := Import(context.Background(), store, c)

	var importErr *ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, "employee", importErr.Kind)
	assert.Equal(t, 1, summary.Projects)
	assert.Zero(t, summary.Offers)
}
