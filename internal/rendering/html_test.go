package rendering

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/document"
	"github.com/jonathan/offer-composer/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(t *testing.T) *document.Document {
	t.Helper()
	hours := 40.0
	line, err := pricing.Calculate(3, decimal.NewFromInt(100), &hours, 0.1)
	require.NoError(t, err)
	total := line.WeeklyPrice
	end := time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC)

	return &document.Document{
		ConfigurationID: uuid.New(),
		OfferID:         uuid.New(),
		Title:           "Export",
		OfferTitle:      "Cloud Migration",
		GeneratedAt:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Sections: []document.Section{
			{
				Kind:  document.SectionCover,
				Title: "Cloud Migration",
				Cover: &document.CoverSheet{
					OfferTitle:       "Cloud Migration",
					EmployeeNames:    []string{"Ada Lovelace"},
					TotalWeeklyPrice: &total,
				},
			},
			{
				Kind:  document.SectionRequiredExperience,
				Title: document.RequiredExperienceTitle,
				Required: &document.ExperienceListing{Categories: []document.ExperienceCategory{
					{Kind: "hard_skill", Label: "Hard skills", Items: []document.ExperienceItem{
						{ID: uuid.New(), Name: "Kubernetes", Category: "Cloud", Level: "Expert"},
					}},
				}},
			},
			{
				Kind:  document.SectionEmployee,
				Title: "Ada Lovelace",
				Employee: &document.EmployeeSection{
					SnapshotID:             uuid.New(),
					EmployeeID:             uuid.New(),
					Name:                   "Ada Lovelace",
					RateCardLevel:          3,
					RelevantWorkExperience: 9,
					Experience: document.ExperienceListing{Categories: []document.ExperienceCategory{
						{Kind: "language", Label: "Languages", Items: []document.ExperienceItem{
							{ID: uuid.New(), Name: "English", Level: "Native speaker"},
						}},
					}},
					Projects: []document.ProjectSection{{
						ID:          uuid.New(),
						Title:       "Data <Lake>",
						Start:       time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
						End:         &end,
						Description: "Moved reporting to the cloud",
						Activities:  []string{"Built the ingestion jobs"},
					}},
					Price: line,
				},
			},
		},
	}
}

func TestHTMLRenderer_Render(t *testing.T) {
	r, err := NewHTMLRenderer("", "")
	require.NoError(t, err)

	doc := testDocument(t)
	artifact, err := r.Render(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "cloud-migration_20240701.html", artifact.Filename)
	assert.Equal(t, HTMLMimeType, artifact.MimeType)

	html := string(artifact.Content)
	assert.Contains(t, html, "Total weekly price: 3600.00 EUR")
	assert.Contains(t, html, "Kubernetes (Cloud)")
	assert.Contains(t, html, "Native speaker")
	assert.Contains(t, html, "Built the ingestion jobs")
	assert.Contains(t, html, "10 %")
	assert.Contains(t, html, "01/2021")
	assert.Contains(t, html, "Data &lt;Lake&gt;")
	assert.Equal(t, 3, strings.Count(html, "<section data-kind="))
}

func TestHTMLRenderer_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.html.tmpl")
	content := `{{range .Sections}}<section data-kind="{{.Kind}}"{{with .Employee}} data-snapshot="{{.SnapshotID}}"{{end}}>{{.Title}}</section>{{end}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := NewHTMLRenderer(path, "USD")
	require.NoError(t, err)

	artifact, err := r.Render(context.Background(), testDocument(t))
	require.NoError(t, err)
	assert.Contains(t, string(artifact.Content), "Ada Lovelace")
}

func TestHTMLRenderer_TemplateDroppingSectionsIsRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lossy.html.tmpl")
	content := `{{range .Sections}}{{if eq .Kind "cover"}}<section data-kind="cover"></section>{{end}}{{end}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	r, err := NewHTMLRenderer(path, "")
	require.NoError(t, err)

	_, err = r.Render(context.Background(), testDocument(t))
	var incomplete *IncompleteArtifactError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 3, incomplete.Expected)
	assert.Equal(t, 1, incomplete.Found)
}

func TestParseTemplate_InvalidPath(t *testing.T) {
	_, err := NewHTMLRenderer("/nonexistent/template.html.tmpl", "")
	assert.Error(t, err)
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "template file not found")
}

func TestParseTemplate_InvalidTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invalid.html.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(`{{.InvalidSyntax{{}}`), 0644))

	_, err := NewHTMLRenderer(path, "")
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
}

func TestRenderHTML_NilDocument(t *testing.T) {
	r, err := NewHTMLRenderer("", "")
	require.NoError(t, err)
	_, err = r.RenderHTML(nil)
	var renderErr *RenderError
	assert.ErrorAs(t, err, &renderErr)
}

func TestNew(t *testing.T) {
	r, err := New(Options{Format: FormatHTML})
	require.NoError(t, err)
	assert.IsType(t, &HTMLRenderer{}, r)

	r, err = New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &PDFRenderer{}, r)

	_, err = New(Options{Format: "docx"})
	assert.Error(t, err)
}
