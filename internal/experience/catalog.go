package experience

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/offer-composer/internal/types"
	"github.com/shopspring/decimal"
)

// WageRate is the hourly rate of one rate-card level
type WageRate struct {
	RateCardLevel int             `json:"rate_card_level"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
}

// Catalog is a bulk set of master data, as kept in seed or export files
type Catalog struct {
	WageRates []WageRate       `json:"wage_rates"`
	Projects  []types.Project  `json:"projects"`
	Employees []types.Employee `json:"employees"`
	Offers    []types.Offer    `json:"offers"`
}

// LoadCatalog loads a catalog from a JSON file
func LoadCatalog(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var catalog Catalog
	if err := json.Unmarshal(content, &catalog); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	return &catalog, nil
}
