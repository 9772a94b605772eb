package rendering

import (
	"fmt"
	"time"

	"github.com/jonathan/offer-composer/internal/document"
	"github.com/sirupsen/logrus"
)

// Supported artifact formats
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// Options selects and configures a renderer
type Options struct {
	Format       string
	TemplatePath string
	Currency     string
	PrintTimeout time.Duration
	Logger       *logrus.Logger
}

// New returns the renderer for opts.Format. An empty format means PDF.
func New(opts Options) (document.Renderer, error) {
	html, err := NewHTMLRenderer(opts.TemplatePath, opts.Currency)
	if err != nil {
		return nil, err
	}
	switch opts.Format {
	case FormatHTML:
		return html, nil
	case FormatPDF, "":
		return NewPDFRenderer(html, opts.PrintTimeout, opts.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (expected %s or %s)", opts.Format, FormatHTML, FormatPDF)
	}
}
