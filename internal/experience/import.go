package experience

import (
	"context"
	"fmt"

	"github.com/jonathan/offer-composer/internal/types"
	"github.com/shopspring/decimal"
)

// Store receives imported entities; *db.DB implements it
type Store interface {
	SetHourlyRate(ctx context.Context, rateCardLevel int, rate decimal.Decimal) error
	SaveProject(ctx context.Context, p *types.Project) error
	SaveEmployee(ctx context.Context, e *types.Employee) error
	SaveOffer(ctx context.Context, o *types.Offer) error
}

// Summary counts what an import wrote
type Summary struct {
	WageRates int
	Projects  int
	Employees int
	Offers    int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d wage rates, %d projects, %d employees, %d offers",
		s.WageRates, s.Projects, s.Employees, s.Offers)
}

// Import normalizes c and saves it in dependency order: rates, projects, employees, offers.
// Saves are upserts, so re-importing the same catalog is safe. The import stops at the first
// failure; entities saved before it stay saved.
func Import(ctx context.Context, store Store, c *Catalog) (Summary, error) {
	var summary Summary
	if err := NormalizeCatalog(c); err != nil {
		return summary, err
	}

	for _, r := range c.WageRates {
		if err := store.SetHourlyRate(ctx, r.RateCardLevel, r.HourlyRate); err != nil {
			return summary, &ImportError{Kind: "wage rate", ID: fmt.Sprintf("%d", r.RateCardLevel), Cause: err}
		}
		summary.WageRates++
	}
	for i := range c.Projects {
		if err := store.SaveProject(ctx, &c.Projects[i]); err != nil {
			return summary, &ImportError{Kind: "project", ID: c.Projects[i].ID.String(), Cause: err}
		}
		summary.Projects++
	}
	for i := range c.Employees {
		if err := store.SaveEmployee(ctx, &c.Employees[i]); err != nil {
			return summary, &ImportError{Kind: "employee", ID: c.Employees[i].ID.String(), Cause: err}
		}
		summary.Employees++
	}
	for i := range c.Offers {
		if err := store.SaveOffer(ctx, &c.Offers[i]); err != nil {
			return summary, &ImportError{Kind: "offer", ID: c.Offers[i].ID.String(), Cause: err}
		}
		summary.Offers++
	}

	return summary, nil
}
