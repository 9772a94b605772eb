package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/pricing"
	"github.com/jonathan/offer-composer/internal/types"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxConcurrency bounds the number of employees resolved in parallel
const DefaultMaxConcurrency = 8

// Options tunes a Generator
type Options struct {
	MaxConcurrency int
	Logger         *logrus.Logger
	Now            func() time.Time
}

// Generator resolves document configurations into documents. It holds no per-call state and
// is safe for concurrent use.
type Generator struct {
	c              Collaborators
	maxConcurrency int
	log            *logrus.Logger
	now            func() time.Time
}

// NewGenerator creates a Generator over the given collaborators
func NewGenerator(c Collaborators, opts Options) *Generator {
	g := &Generator{
		c:              c,
		maxConcurrency: opts.MaxConcurrency,
		log:            opts.Logger,
		now:            opts.Now,
	}
	if g.maxConcurrency <= 0 {
		g.maxConcurrency = DefaultMaxConcurrency
	}
	if g.log == nil {
		g.log = logrus.New()
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

// WithDownloader returns a copy of g that hands artifacts to d. Used for per-request sinks
// such as an HTTP response.
func (g *Generator) WithDownloader(d Downloader) *Generator {
	clone := *g
	clone.c.Downloader = d
	return &clone
}

// GenerateDocument builds, renders and hands off the document described by cfg.
// It reports success as a single boolean; diagnostics go to the logger.
func (g *Generator) GenerateDocument(ctx context.Context, cfg *types.DocumentConfiguration) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			g.log.WithField("panic", r).Error("document generation panicked")
			ok = false
		}
	}()
	_, err := g.Generate(ctx, cfg)
	return err == nil
}

// Generate is GenerateDocument with the error and result exposed
func (g *Generator) Generate(ctx context.Context, cfg *types.DocumentConfiguration) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("document configuration is nil")
	}
	log := g.log.WithFields(logrus.Fields{
		"configuration_id": cfg.ID,
		"offer_id":         cfg.OfferID,
	})
	start := time.Now()

	doc, err := g.Build(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("document generation aborted")
		return nil, err
	}

	if g.c.Renderer == nil || g.c.Downloader == nil {
		return nil, fmt.Errorf("generator has no renderer or downloader configured")
	}

	artifact, err := g.c.Renderer.Render(ctx, doc)
	if err != nil {
		log.WithError(err).Error("rendering failed")
		return nil, &RenderError{Message: "failed to render document", Cause: err}
	}

	download, err := g.c.Downloader.DownloadFile(ctx, artifact.Filename, artifact.Content, artifact.MimeType)
	if err != nil || !download.Succeeded {
		hErr := &HandOffError{Filename: artifact.Filename, Cause: err}
		log.WithError(hErr).Error("artifact hand-off failed")
		return nil, hErr
	}

	log.WithFields(logrus.Fields{
		"sections": len(doc.Sections),
		"filename": artifact.Filename,
		"bytes":    len(artifact.Content),
		"elapsed":  time.Since(start).String(),
	}).Info("document generated")

	return &Result{Document: doc, Artifact: artifact, Download: download}, nil
}

// Build resolves every entity the configuration references and assembles the document.
// Any missing entity aborts the build; there is no partial document.
func (g *Generator) Build(ctx context.Context, cfg *types.DocumentConfiguration) (*Document, error) {
	if cfg == nil {
		return nil, fmt.Errorf("document configuration is nil")
	}

	offer, err := g.c.Offers.GetOffer(ctx, cfg.OfferID)
	if err != nil {
		return nil, &LookupError{Kind: EntityOffer, ID: cfg.OfferID.String(), Cause: err}
	}
	if offer == nil {
		return nil, &NotFoundError{Kind: EntityOffer, ID: cfg.OfferID.String()}
	}

	if err := cfg.CheckReferences(offer); err != nil {
		return nil, &StaleReferenceError{ConfigurationID: cfg.ID, Cause: err}
	}

	employees, err := g.resolveEmployees(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return assemble(cfg, offer, employees, g.now()), nil
}

// resolvedEmployee is everything fetched for one snapshot
type resolvedEmployee struct {
	snapshot *types.ShownEmployeeProperties
	employee *types.Employee
	projects []types.Project
	price    *pricing.Line
}

// resolveEmployees fans out one resolution per snapshot ID. Results are stored by position so
// the document follows configuration order. The first failure cancels the rest.
func (g *Generator) resolveEmployees(ctx context.Context, cfg *types.DocumentConfiguration) ([]resolvedEmployee, error) {
	results := make([]resolvedEmployee, len(cfg.ShownEmployeePropertyIDs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.maxConcurrency)

	for i, id := range cfg.ShownEmployeePropertyIDs {
		goSafe(eg, func() error {
			r, err := g.resolveEmployee(egCtx, id, cfg.IncludePriceCalculation)
			if err != nil {
				return err
			}
			results[i] = *r
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolveEmployee resolves a snapshot first, then its employee, projects and rate in parallel
func (g *Generator) resolveEmployee(ctx context.Context, snapshotID uuid.UUID, includePrice bool) (*resolvedEmployee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot, err := g.c.Snapshots.GetShownEmployeeProperties(ctx, snapshotID)
	if err != nil {
		return nil, &LookupError{Kind: EntitySnapshot, ID: snapshotID.String(), Cause: err}
	}
	if snapshot == nil {
		return nil, &NotFoundError{Kind: EntitySnapshot, ID: snapshotID.String()}
	}

	r := &resolvedEmployee{
		snapshot: snapshot,
		projects: make([]types.Project, len(snapshot.ProjectIDs)),
	}

	eg, egCtx := errgroup.WithContext(ctx)

	goSafe(eg, func() error {
		employee, err := g.c.Employees.GetEmployee(egCtx, snapshot.EmployeeID)
		if err != nil {
			return &LookupError{Kind: EntityEmployee, ID: snapshot.EmployeeID.String(), Cause: err}
		}
		if employee == nil {
			return &NotFoundError{Kind: EntityEmployee, ID: snapshot.EmployeeID.String()}
		}
		r.employee = employee
		return nil
	})

	for j, projectID := range snapshot.ProjectIDs {
		goSafe(eg, func() error {
			project, err := g.c.Projects.GetProject(egCtx, projectID)
			if err != nil {
				return &LookupError{Kind: EntityProject, ID: projectID.String(), Cause: err}
			}
			if project == nil {
				return &NotFoundError{Kind: EntityProject, ID: projectID.String()}
			}
			filtered := *project
			filtered.Activities = project.ActivitiesFor(snapshot.ProjectActivityIDs)
			r.projects[j] = filtered
			return nil
		})
	}

	if includePrice && snapshot.PlannedWeeklyHours != nil {
		goSafe(eg, func() error {
			rate, err := g.c.Rates.GetHourlyRate(egCtx, snapshot.RateCardLevel)
			if err != nil {
				return &LookupError{Kind: EntityRate, ID: fmt.Sprintf("%d", snapshot.RateCardLevel), Cause: err}
			}
			line, err := pricing.Calculate(snapshot.RateCardLevel, rate, snapshot.PlannedWeeklyHours, snapshot.Discount)
			if err != nil {
				return err
			}
			r.price = line
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

// goSafe runs fn on eg and turns a panic into a *PanicError, so it fails the group instead
// of the process
func goSafe(eg *errgroup.Group, fn func() error) {
	eg.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r}
			}
		}()
		return fn()
	})
}

// totalPrice sums the price lines of resolved employees; nil when no line exists
func totalPrice(employees []resolvedEmployee) *decimal.Decimal {
	var lines []*pricing.Line
	for _, e := range employees {
		if e.price != nil {
			lines = append(lines, e.price)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	total := pricing.Total(lines...)
	return &total
}
