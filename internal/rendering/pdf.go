package rendering

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/offer-composer/internal/document"
	"github.com/sirupsen/logrus"
)

// PDFMimeType is the MIME type of PDF artifacts
const PDFMimeType = "application/pdf"

// DefaultPrintTimeout bounds one headless browser print
const DefaultPrintTimeout = 30 * time.Second

// PDFRenderer renders documents to HTML and prints them to PDF in a headless browser.
// Requires Chrome/Chromium to be installed on the system.
type PDFRenderer struct {
	html    *HTMLRenderer
	timeout time.Duration
	log     *logrus.Logger
}

// NewPDFRenderer wraps an HTML renderer. A zero timeout uses DefaultPrintTimeout.
func NewPDFRenderer(html *HTMLRenderer, timeout time.Duration, log *logrus.Logger) *PDFRenderer {
	if timeout <= 0 {
		timeout = DefaultPrintTimeout
	}
	if log == nil {
		log = logrus.New()
	}
	return &PDFRenderer{html: html, timeout: timeout, log: log}
}

// Render produces a PDF artifact. The HTML is checked before printing and the PDF after.
func (r *PDFRenderer) Render(ctx context.Context, doc *document.Document) (*document.Artifact, error) {
	html, err := r.html.RenderHTML(doc)
	if err != nil {
		return nil, err
	}
	if err := VerifyHTML(doc, html); err != nil {
		return nil, err
	}

	pdf, err := PrintToPDF(ctx, html, r.timeout, r.log)
	if err != nil {
		return nil, &RenderError{Message: "failed to print PDF", Cause: err}
	}
	if err := VerifyPDF(doc, pdf); err != nil {
		return nil, err
	}

	return &document.Artifact{
		Filename: doc.FileStem() + ".pdf",
		Content:  pdf,
		MimeType: PDFMimeType,
	}, nil
}

// PrintToPDF loads html into a fresh headless browser tab and prints it
func PrintToPDF(ctx context.Context, html string, timeout time.Duration, log *logrus.Logger) ([]byte, error) {
	log.WithField("bytes", len(html)).Debug("starting headless browser for PDF print")

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser print failed: %w", err)
	}

	log.WithField("bytes", len(pdf)).Debug("PDF printed")
	return pdf, nil
}
