package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrWageRateNotFound is returned for a rate-card level without a rate
var ErrWageRateNotFound = errors.New("wage rate not found")

// GetHourlyRate returns the hourly rate of a rate-card level
func (db *DB) GetHourlyRate(ctx context.Context, rateCardLevel int) (decimal.Decimal, error) {
	var raw string
	err := db.pool.QueryRow(ctx,
		`SELECT hourly_rate::text FROM wage_rates WHERE rate_card_level = $1`,
		rateCardLevel,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: rate card level %d", ErrWageRateNotFound, rateCardLevel)
		}
		return decimal.Zero, fmt.Errorf("failed to get wage rate: %w", err)
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid wage rate %q for level %d: %w", raw, rateCardLevel, err)
	}
	return rate, nil
}

// SetHourlyRate inserts or updates the rate of a rate-card level
func (db *DB) SetHourlyRate(ctx context.Context, rateCardLevel int, rate decimal.Decimal) error {
	if rate.IsNegative() {
		return fmt.Errorf("hourly rate must not be negative: %s", rate)
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO wage_rates (rate_card_level, hourly_rate)
		 VALUES ($1, $2::numeric)
		 ON CONFLICT (rate_card_level) DO UPDATE SET hourly_rate = $2::numeric, updated_at = NOW()`,
		rateCardLevel, rate.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to set wage rate: %w", err)
	}
	return nil
}
