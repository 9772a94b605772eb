// Package pricing computes weekly prices for employees proposed on an offer.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Line is the price breakdown for one employee
type Line struct {
	RateCardLevel      int             `json:"rate_card_level"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	PlannedWeeklyHours decimal.Decimal `json:"planned_weekly_hours"`
	Discount           decimal.Decimal `json:"discount"`
	WeeklyPrice        decimal.Decimal `json:"weekly_price"`
}

// Calculate returns hourlyRate × plannedHours × (1 − discount), rounded to cents.
// It returns nil when plannedHours is nil: no planned hours means no price line.
func Calculate(rateCardLevel int, hourlyRate decimal.Decimal, plannedHours *float64, discount float64) (*Line, error) {
	if plannedHours == nil {
		return nil, nil
	}
	if hourlyRate.IsNegative() {
		return nil, fmt.Errorf("negative hourly rate %s for rate card level %d", hourlyRate, rateCardLevel)
	}

	hours := decimal.NewFromFloat(*plannedHours)
	d := decimal.NewFromFloat(discount)
	factor := decimal.NewFromInt(1).Sub(d)

	return &Line{
		RateCardLevel:      rateCardLevel,
		HourlyRate:         hourlyRate,
		PlannedWeeklyHours: hours,
		Discount:           d,
		WeeklyPrice:        hourlyRate.Mul(hours).Mul(factor).Round(2),
	}, nil
}

// Total sums the weekly prices of lines, skipping nil entries
func Total(lines ...*Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l == nil {
			continue
		}
		total = total.Add(l.WeeklyPrice)
	}
	return total
}

// Format renders an amount for documents, e.g. "1234.50 EUR"
func Format(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return amount.StringFixed(2) + " " + currency
}
