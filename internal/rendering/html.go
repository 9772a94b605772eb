package rendering

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/jonathan/offer-composer/internal/document"
	"github.com/jonathan/offer-composer/internal/pricing"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

const defaultTemplate = "templates/offer.html.tmpl"

// DefaultCurrency is printed after every amount unless overridden
const DefaultCurrency = "EUR"

// HTMLMimeType is the MIME type of HTML artifacts
const HTMLMimeType = "text/html; charset=utf-8"

// HTMLRenderer renders documents with an html/template
type HTMLRenderer struct {
	tmpl     *template.Template
	currency string
}

// NewHTMLRenderer parses the template at templatePath, or the built-in template when the path
// is empty
func NewHTMLRenderer(templatePath, currency string) (*HTMLRenderer, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	r := &HTMLRenderer{currency: currency}
	tmpl, err := parseTemplate(templatePath, r.funcs())
	if err != nil {
		return nil, err
	}
	r.tmpl = tmpl
	return r, nil
}

// parseTemplate reads and parses a document template file
func parseTemplate(templatePath string, funcs template.FuncMap) (*template.Template, error) {
	var content []byte
	var err error
	if templatePath == "" {
		content, err = templateFiles.ReadFile(defaultTemplate)
	} else {
		content, err = os.ReadFile(templatePath)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}

	tmpl, err := template.New("offer").Funcs(funcs).Parse(string(content))
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

func (r *HTMLRenderer) funcs() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string { return t.Format("01/2006") },
		"optdate": func(t *time.Time) string {
			if t == nil {
				return "open"
			}
			return t.Format("01/2006")
		},
		"money": func(v any) (string, error) {
			switch amount := v.(type) {
			case decimal.Decimal:
				return pricing.Format(amount, r.currency), nil
			case *decimal.Decimal:
				if amount == nil {
					return "", nil
				}
				return pricing.Format(*amount, r.currency), nil
			default:
				return "", fmt.Errorf("money: unsupported type %T", v)
			}
		},
		"percent": func(d decimal.Decimal) string {
			return d.Mul(decimal.NewFromInt(100)).StringFixed(0) + " %"
		},
	}
}

// RenderHTML executes the template for doc
func (r *HTMLRenderer) RenderHTML(doc *document.Document) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "document is nil"}
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return buf.String(), nil
}

// Render produces an HTML artifact and checks it carries every section of doc
func (r *HTMLRenderer) Render(_ context.Context, doc *document.Document) (*document.Artifact, error) {
	html, err := r.RenderHTML(doc)
	if err != nil {
		return nil, err
	}
	if err := VerifyHTML(doc, html); err != nil {
		return nil, err
	}
	return &document.Artifact{
		Filename: doc.FileStem() + ".html",
		Content:  []byte(html),
		MimeType: HTMLMimeType,
	}, nil
}
