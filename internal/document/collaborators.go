package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/types"
	"github.com/shopspring/decimal"
)

// The lookups below return (nil, nil) when the entity does not exist, following the
// internal/db convention. A non-nil error means the collaborator itself failed.

// EmployeeStore resolves employees
type EmployeeStore interface {
	GetEmployee(ctx context.Context, id uuid.UUID) (*types.Employee, error)
}

// OfferStore resolves offers together with their snapshots
type OfferStore interface {
	GetOffer(ctx context.Context, id uuid.UUID) (*types.Offer, error)
}

// SnapshotStore resolves offer-scoped employee snapshots
type SnapshotStore interface {
	GetShownEmployeeProperties(ctx context.Context, id uuid.UUID) (*types.ShownEmployeeProperties, error)
}

// ProjectStore resolves projects
type ProjectStore interface {
	GetProject(ctx context.Context, id uuid.UUID) (*types.Project, error)
}

// WageRates looks up the hourly rate of a rate-card level
type WageRates interface {
	GetHourlyRate(ctx context.Context, rateCardLevel int) (decimal.Decimal, error)
}

// Renderer turns a document into an artifact. Implementations must fail rather than return
// an artifact that is missing content.
type Renderer interface {
	Render(ctx context.Context, doc *Document) (*Artifact, error)
}

// Downloader accepts a finished artifact
type Downloader interface {
	DownloadFile(ctx context.Context, filename string, content []byte, mimeType string) (DownloadResult, error)
}

// Collaborators bundles everything a Generator depends on
type Collaborators struct {
	Employees  EmployeeStore
	Offers     OfferStore
	Snapshots  SnapshotStore
	Projects   ProjectStore
	Rates      WageRates
	Renderer   Renderer
	Downloader Downloader
}
