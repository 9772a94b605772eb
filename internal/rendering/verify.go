package rendering

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/offer-composer/internal/document"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// VerifyHTML checks that html holds one section element per document section, with the
// employee sections in document order
func VerifyHTML(doc *document.Document, html string) error {
	page, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &RenderError{Message: "failed to parse rendered HTML", Cause: err}
	}

	sections := page.Find("section[data-kind]")
	if sections.Length() != len(doc.Sections) {
		return &IncompleteArtifactError{
			Format:   "html",
			What:     "sections",
			Expected: len(doc.Sections),
			Found:    sections.Length(),
		}
	}

	var snapshots []string
	page.Find(`section[data-kind="employee"]`).Each(func(_ int, s *goquery.Selection) {
		snapshots = append(snapshots, s.AttrOr("data-snapshot", ""))
	})
	employees := doc.Employees()
	if len(snapshots) != len(employees) {
		return &IncompleteArtifactError{
			Format:   "html",
			What:     "employee sections",
			Expected: len(employees),
			Found:    len(snapshots),
		}
	}
	for i, e := range employees {
		if snapshots[i] != e.SnapshotID.String() {
			return &RenderError{Message: fmt.Sprintf("employee section %d is %q, expected %s", i, snapshots[i], e.SnapshotID)}
		}
	}
	return nil
}

// VerifyPDF checks that pdf parses and has at least one page per document section. Every
// section after the first starts on a new page.
func VerifyPDF(doc *document.Document, pdf []byte) error {
	pages, err := CountPDFPages(pdf)
	if err != nil {
		return err
	}
	return checkPageCount(doc, pages)
}

func checkPageCount(doc *document.Document, pages int) error {
	want := len(doc.Sections)
	if want == 0 {
		want = 1
	}
	if pages < want {
		return &IncompleteArtifactError{Format: "pdf", What: "pages", Expected: want, Found: pages}
	}
	return nil
}

// CountPDFPages reads and validates pdf and returns its page count
func CountPDFPages(pdf []byte) (int, error) {
	if len(pdf) == 0 {
		return 0, &RenderError{Message: "PDF is empty"}
	}
	count, err := api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return 0, &RenderError{Message: "failed to read PDF", Cause: err}
	}
	return count, nil
}
